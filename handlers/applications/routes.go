package applications

import (
	"hub/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to applications
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		// Submission and reads
		applications.POST("/tasks/:task_id", SubmitApplication)
		applications.GET("/mine", GetOwnApplications)
		applications.GET("/tasks/:task_id", GetTaskApplications)
		applications.GET("/rounds/:round_id", GetRoundApplications)
		applications.GET("/:id", GetApplication)

		// File artifact
		applications.GET("/:id/download", DownloadApplicationFile)

		// Review
		applications.PUT("/:id/review", SaveReview)
	}
}
