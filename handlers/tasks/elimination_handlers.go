package tasks

import (
	"net/http"

	"hub/middleware"
	"hub/services"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
)

// [PUT] EliminateApplicants
// @Summary Eliminate applicants from a task
// @Description Union the given identities into the task's elimination ledger. Idempotent; entries are never removed.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body EliminateRequest true "Applicants to eliminate"
// @Success 200 {array} string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/eliminate [put]
// @Security Bearer
func EliminateApplicants(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req EliminateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	ledger, err := services.Eliminate(c.Param("id"), user.Username, req.Applicants)
	if err != nil {
		response.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// [GET] GetEliminatedApplicants
// @Summary Get a task's elimination ledger
// @Description List the identities eliminated from the task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {array} string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/eliminated [get]
// @Security Bearer
func GetEliminatedApplicants(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	taskID := c.Param("id")
	if _, err := services.GetTask(taskID); err != nil {
		response.AppError(c, err)
		return
	}

	ledger, err := services.ListEliminated(taskID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch elimination ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// [GET] GetOwnEliminationStatus
// @Summary Check whether the caller is eliminated from a task
// @Description Pure predicate over the task's elimination ledger for the authenticated user
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/eliminated/me [get]
// @Security Bearer
func GetOwnEliminationStatus(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	taskID := c.Param("id")
	if _, err := services.GetTask(taskID); err != nil {
		response.AppError(c, err)
		return
	}

	eliminated, err := services.IsEliminated(taskID, user.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to check elimination ledger")
		return
	}
	c.JSON(http.StatusOK, gin.H{"eliminated": eliminated})
}
