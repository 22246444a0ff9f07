package notifications

import (
	"hub/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to notifications
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		// Aggregate badge
		notifications.GET("/summary", GetSummary)

		// Per-class reads
		notifications.GET("/applications", GetNewApplicationCounts)
		notifications.GET("/reviews", GetNewReviewCounts)
		notifications.GET("/eliminations", GetEliminationNotifications)
		notifications.GET("/round-activations", GetRoundActivationNotifications)

		// Watermark advances
		notifications.PUT("/tasks/:task_id/reviews/touch", TouchReviewView)
		notifications.PUT("/tasks/:task_id/eliminations/touch", TouchEliminationView)
		notifications.PUT("/tasks/:task_id/round-activations/touch", TouchRoundActivationView)
	}
}
