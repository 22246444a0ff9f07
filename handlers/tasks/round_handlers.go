package tasks

import (
	"net/http"

	"hub/metrics"
	"hub/middleware"
	"hub/services"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
)

// [PUT] ActivateNextRound
// @Summary Activate the task's next round
// @Description Deactivate the current round and activate the next one, gated on the current deadline having passed. Never happens automatically; a caller must invoke this transition.
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Round
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tasks/{id}/activate-next [put]
// @Security Bearer
func ActivateNextRound(c *gin.Context) {
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
		response.Error(c, http.StatusForbidden, "Only the task creator can advance rounds")
		return
	}

	next, err := services.ActivateNextRound(taskID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	metrics.RoundActivationsTotal.WithLabelValues(taskID).Inc()
	c.JSON(http.StatusOK, next)
}
