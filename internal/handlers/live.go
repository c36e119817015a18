package handlers

import (
	"log"
	"net/http"

	"veritas/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LiveHandler upgrades clients onto the realtime analysis stream
type LiveHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewLiveHandler creates a new live handler
func NewLiveHandler(hub *realtime.Hub) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Stream handles GET /api/live
func (h *LiveHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	h.hub.Add(conn)

	// Drain client frames so pings are answered; any read error means the
	// client is gone.
	go func() {
		defer h.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
