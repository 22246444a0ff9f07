package applications

import (
	"net/http"

	"hub/middleware"
	"hub/services"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
)

// [PUT] SaveReview
// @Summary Save a review on an application
// @Description Creator-only. Text is only legal when the task's evaluation mode includes text, points (0-10) only when it includes points; a disallowed field is rejected. Overwrites any prior review.
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param review body ReviewRequest true "Review fields"
// @Success 200 {object} models.Application
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /applications/{id}/review [put]
// @Security Bearer
func SaveReview(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	app, err := services.SaveReview(c.Param("id"), user.Username, req.Text, req.Points)
	if err != nil {
		response.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
