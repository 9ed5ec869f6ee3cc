package ws

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/harshulchawla1408/Astrousers-sub000/src/presence"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, restrict to configured origins.
		return true
	},
}

// Handler upgrades authenticated requests to websocket connections and binds
// their lifecycle to the presence registry.
type Handler struct {
	hub      *Hub
	registry *presence.Registry
}

// NewHandler creates the websocket endpoint handler.
func NewHandler(hub *Hub, registry *presence.Registry) *Handler {
	return &Handler{hub: hub, registry: registry}
}

// Serve handles GET /ws. The auth middleware has already placed the verified
// identity in the gin context.
func (h *Handler) Serve(ctx *gin.Context) {
	identityID := ctx.GetString("identity_id")

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "identity_id", identityID, "error", err)
		return
	}

	client := NewClient(identityID, conn)
	h.hub.Register(client)
	h.registry.Connect(ctx.Request.Context(), identityID, client)

	go client.writePump()
	go func() {
		client.readPump()
		// The registry compares handle ids, so this disconnect is a no-op if
		// a newer connection already superseded this one.
		h.hub.Unregister(client)
		h.registry.Disconnect(identityID, client)
	}()
}
