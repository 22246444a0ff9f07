package realtime

import (
	"log"
	"sync"

	"hub/models"

	"github.com/gorilla/websocket"
)

var (
	taskClients = make(map[string]map[*websocket.Conn]bool) // Map of task ID to connected clients
	broadcast   = make(chan SubmissionUpdate)               // Broadcast channel for updates
	mutex       sync.Mutex                                  // Mutex to protect taskClients map
)

// SubmissionUpdate represents a freshly accepted application on a task
type SubmissionUpdate struct {
	TaskID      string             `json:"task_id"`
	Application models.Application `json:"application"`
	UpdateType  string             `json:"update_type"` // "submitted"
}

// RegisterClient adds a WebSocket client to a specific task
func RegisterClient(taskID string, conn *websocket.Conn) {
	mutex.Lock()
	if taskClients[taskID] == nil {
		taskClients[taskID] = make(map[*websocket.Conn]bool)
	}
	taskClients[taskID][conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from a specific task
func UnregisterClient(taskID string, conn *websocket.Conn) {
	mutex.Lock()
	if clients, exists := taskClients[taskID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(taskClients, taskID)
		}
	}
	mutex.Unlock()
}

// BroadcastSubmission sends an update to all clients watching the task
func BroadcastSubmission(update SubmissionUpdate) {
	broadcast <- update
}

func handleBroadcast() {
	for {
		update := <-broadcast
		mutex.Lock()
		if clients, exists := taskClients[update.TaskID]; exists {
			for client := range clients {
				if err := client.WriteJSON(update); err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(clients, client)
				}
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
