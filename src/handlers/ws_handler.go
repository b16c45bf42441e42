package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/scopetrack/scopetrack-go/src/events"
	"github.com/scopetrack/scopetrack-go/src/response"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsWebSocketHandler streams entity-changed events to the client so open
// views can refetch instead of polling.
func EventsWebSocketHandler(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "websocket upgrade failed: " + err.Error()})
			return
		}

		ch := hub.Subscribe()
		defer hub.Unsubscribe(ch)
		defer conn.Close()

		// drain client frames so pings and closes are processed
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for event := range ch {
			if err := conn.WriteJSON(event); err != nil {
				log.Println("ws event write failed:", err)
				return
			}
		}
	}
}
