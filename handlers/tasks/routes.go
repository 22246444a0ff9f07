package tasks

import (
	"hub/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to tasks
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		// Task management routes
		tasks.GET("/", GetAllTasks)
		tasks.GET("/:id", GetTask)
		tasks.POST("/", CreateTask)
		tasks.PUT("/:id", UpdateTask)
		tasks.DELETE("/:id", DeleteTask)

		// Round progression routes
		tasks.PUT("/:id/activate-next", ActivateNextRound)

		// Elimination ledger routes
		tasks.PUT("/:id/eliminate", EliminateApplicants)
		tasks.GET("/:id/eliminated", GetEliminatedApplicants)
		tasks.GET("/:id/eliminated/me", GetOwnEliminationStatus)

		// Creator watermark
		tasks.PUT("/:id/touch-view", TouchCreatorView)

		// Creator tooling
		tasks.GET("/:id/export", ExportTaskApplicationsExcel)
		tasks.GET("/:id/live", TaskWebSocket)
	}
}
