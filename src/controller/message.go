package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshulchawla1408/Astrousers-sub000/src/middleware"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
	"github.com/harshulchawla1408/Astrousers-sub000/src/service"
	"github.com/harshulchawla1408/Astrousers-sub000/src/utils"
)

type MessageController struct {
	Coordinator *service.Coordinator
}

func NewMessageController(coordinator *service.Coordinator) *MessageController {
	return &MessageController{Coordinator: coordinator}
}

// @Summary Send a chat message
// @Description Appends a message to an active session's transcript
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param SendMessageRequest body schemas.SendMessageRequest true "Message"
// @Success 201 {object} models.Message
// @Failure 409 {object} schemas.ErrorResponse
// @Router /sessions/{id}/messages [post]
func (mc *MessageController) Send(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)
	sessionID := ctx.Param("id")
	instance := "/sessions/" + sessionID + "/messages"

	var req schemas.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.SendError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error(), instance))
		return
	}

	message, err := mc.Coordinator.SendMessage(ctx.Request.Context(), sessionID, identityID, req.Text)
	if err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, instance))
		return
	}

	ctx.JSON(http.StatusCreated, message)
}

func (mc *MessageController) List(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)
	sessionID := ctx.Param("id")

	messages, err := mc.Coordinator.Messages(ctx.Request.Context(), sessionID, identityID)
	if err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, "/sessions/"+sessionID+"/messages"))
		return
	}

	ctx.JSON(http.StatusOK, schemas.MessageListResponse{
		SessionID: sessionID,
		Messages:  messages,
	})
}

// MarkRead flags the transcript messages addressed to the caller as delivered.
func (mc *MessageController) MarkRead(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)
	sessionID := ctx.Param("id")

	if err := mc.Coordinator.MarkDelivered(ctx.Request.Context(), sessionID, identityID); err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, "/sessions/"+sessionID+"/messages/read"))
		return
	}

	ctx.Status(http.StatusNoContent)
}
