package tasks

import (
	"log"
	"net/http"

	"hub/middleware"
	"hub/realtime"
	"hub/services"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TaskWebSocket streams new submissions on a task to its creator as they
// arrive. This is read-side fan-out only; the lifecycle engine itself
// stays pull-driven.
func TaskWebSocket(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	taskID := c.Param("id")
	task, err := services.GetTask(taskID)
	if err != nil {
		response.AppError(c, err)
		return
	}
	if task.Creator != user.Username {
		response.Error(c, http.StatusForbidden, ErrNoPermissionLive)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	realtime.RegisterClient(taskID, conn)
	defer func() {
		realtime.UnregisterClient(taskID, conn)
		conn.Close()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
