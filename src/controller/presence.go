package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshulchawla1408/Astrousers-sub000/src/middleware"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
	"github.com/harshulchawla1408/Astrousers-sub000/src/presence"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
	"github.com/harshulchawla1408/Astrousers-sub000/src/utils"
)

type PresenceController struct {
	Registry *presence.Registry
}

func NewPresenceController(registry *presence.Registry) *PresenceController {
	return &PresenceController{Registry: registry}
}

// SetAvailability toggles one channel flag for the calling advisor.
func (pc *PresenceController) SetAvailability(ctx *gin.Context) {
	identityID := ctx.GetString(middleware.IdentityKey)

	var req schemas.SetAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.SendError(ctx, schemas.NewBadRequestError("Invalid JSON format: "+err.Error(), "/presence/availability"))
		return
	}

	channel := models.Channel(req.Channel)
	if !channel.Valid() {
		utils.SendError(ctx, schemas.NewBadRequestError("channel must be one of text, audio, video", "/presence/availability"))
		return
	}

	if err := pc.Registry.SetAvailability(identityID, channel, *req.Enabled); err != nil {
		utils.SendError(ctx, schemas.FromDomain(err, "/presence/availability"))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListOnlineAdvisors returns the current advisors-online snapshot. Clients
// reconnecting after missed pushes fetch this to reconcile.
func (pc *PresenceController) ListOnlineAdvisors(ctx *gin.Context) {
	entries := pc.Registry.ListOnlineAdvisors()

	snapshot := schemas.OnlineAdvisorsSnapshot{Advisors: make([]schemas.OnlineAdvisor, 0, len(entries))}
	for _, entry := range entries {
		snapshot.Advisors = append(snapshot.Advisors, schemas.OnlineAdvisor{
			AdvisorID:    entry.IdentityID,
			Availability: entry.Availability,
		})
	}

	ctx.JSON(http.StatusOK, snapshot)
}
