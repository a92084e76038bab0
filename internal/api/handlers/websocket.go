package handlers

import (
	"log/slog"

	"voting-service/internal/websocket"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
)

type WSHandler struct {
	hub      *websocket.Hub
	upgrader gorilla.Upgrader
}

func NewWSHandler(hub *websocket.Hub, allowedOrigins []string) *WSHandler {
	return &WSHandler{hub: hub, upgrader: websocket.Upgrader(allowedOrigins)}
}

// ResultsFeed godoc
// @Summary Live results feed
// @Description WebSocket stream of vote and candidate events as JSON text frames.
// @Tags results
// @Success 101 "Switching Protocols - WebSocket connection established"
// @Router /ws/results [get]
func (h *WSHandler) ResultsFeed(c *gin.Context) {
	if err := h.hub.Serve(h.upgrader, c.Writer, c.Request); err != nil {
		// The upgrader already answered the client
		slog.Debug("Results feed upgrade failed", "clientIP", c.ClientIP(), "error", err)
	}
}
