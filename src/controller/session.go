package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/harshulchawla1408/Astrousers-sub000/src/middleware"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
	"github.com/harshulchawla1408/Astrousers-sub000/src/service"
	"github.com/harshulchawla1408/Astrousers-sub000/src/utils"
)

type SessionController struct {
	Coordinator *service.Coordinator
	Logger      *logrus.Logger
}

func NewSessionController(coordinator *service.Coordinator, logger *logrus.Logger) *SessionController {
	return &SessionController{
		Coordinator: coordinator,
		Logger:      logger,
	}
}

// @Summary Request a consultation
// @Description Creates a PENDING consultation session with an online advisor
// @Tags sessions
// @Accept json
// @Produce json
// @Param CreateSessionRequest body schemas.CreateSessionRequest true "Consultation Request"
// @Success 201 {object} schemas.SessionResponse
// @Failure 402 {object} schemas.ErrorResponse
// @Failure 409 {object} schemas.ErrorResponse
// @Router /sessions [post]
func (sc *SessionController) Create(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)

	var req schemas.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.SendError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error(), "/sessions"))
		return
	}

	channel := models.Channel(req.Channel)
	if !channel.Valid() {
		utils.SendError(ctx, schemas.NewBadRequestError("channel must be one of text, audio, video", "/sessions"))
		return
	}

	session, err := sc.Coordinator.Create(ctx.Request.Context(), identityID, req.AdvisorID, channel)
	if err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, "/sessions"))
		return
	}

	sc.Logger.WithFields(logrus.Fields{
		"session_id": session.SessionID,
		"advisor_id": req.AdvisorID,
	}).Info("Consultation requested")

	ctx.JSON(http.StatusCreated, schemas.NewSessionResponse(session, true))
}

// @Summary Accept a pending consultation
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} schemas.SessionResponse
// @Failure 403 {object} schemas.ErrorResponse
// @Failure 409 {object} schemas.ErrorResponse
// @Router /sessions/{id}/accept [post]
func (sc *SessionController) Accept(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)
	sessionID := ctx.Param("id")
	instance := "/sessions/" + sessionID + "/accept"

	session, err := sc.Coordinator.Accept(ctx.Request.Context(), sessionID, identityID)
	if err != nil {
		sc.resolveOutcome(ctx, session, err, instance)
		return
	}

	ctx.JSON(http.StatusOK, schemas.NewSessionResponse(session, true))
}

// @Summary Reject a pending consultation
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} schemas.SessionResponse
// @Router /sessions/{id}/reject [post]
func (sc *SessionController) Reject(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)
	sessionID := ctx.Param("id")
	instance := "/sessions/" + sessionID + "/reject"

	session, err := sc.Coordinator.Reject(ctx.Request.Context(), sessionID, identityID)
	if err != nil {
		sc.resolveOutcome(ctx, session, err, instance)
		return
	}

	ctx.JSON(http.StatusOK, schemas.NewSessionResponse(session, true))
}

// @Summary End a consultation
// @Description Ends a pending or active session, billing the metered duration
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} schemas.SessionResponse
// @Router /sessions/{id}/end [post]
func (sc *SessionController) End(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)
	sessionID := ctx.Param("id")
	instance := "/sessions/" + sessionID + "/end"

	session, err := sc.Coordinator.End(ctx.Request.Context(), sessionID, identityID)
	if err != nil {
		sc.resolveOutcome(ctx, session, err, instance)
		return
	}

	ctx.JSON(http.StatusOK, schemas.NewSessionResponse(session, true))
}

func (sc *SessionController) Get(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)
	sessionID := ctx.Param("id")

	session, err := sc.Coordinator.Get(ctx.Request.Context(), sessionID, identityID)
	if err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, "/sessions/"+sessionID))
		return
	}

	ctx.JSON(http.StatusOK, schemas.NewSessionResponse(session, true))
}

func (sc *SessionController) List(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)

	sessions, err := sc.Coordinator.ListFor(ctx.Request.Context(), identityID)
	if err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, "/sessions"))
		return
	}

	resp := schemas.SessionListResponse{Sessions: make([]schemas.SessionResponse, 0, len(sessions))}
	for i := range sessions {
		resp.Sessions = append(resp.Sessions, schemas.NewSessionResponse(&sessions[i], true))
	}
	ctx.JSON(http.StatusOK, resp)
}

// resolveOutcome maps transition results onto responses. An idempotent
// re-resolution (AlreadyResolved, AlreadyEnded) is surfaced as a normal
// completion carrying the settled record, not as an error.
func (sc *SessionController) resolveOutcome(ctx *gin.Context, session *models.Session, err error, instance string) {
	switch err.(type) {
	case *models.AlreadyResolvedError, *models.AlreadyEndedError:
		if session != nil {
			ctx.JSON(http.StatusOK, schemas.NewSessionResponse(session, true))
			return
		}
	}
	utils.SendError(ctx, schemas.FromDomain(err, instance))
}
