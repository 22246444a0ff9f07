package tasks

import (
	"net/http"

	"hub/middleware"
	"hub/services"
	"hub/storage"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
)

// [GET] GetAllTasks
// @Summary Get all tasks
// @Description Get every task with its rounds and elimination ledger
// @Tags Tasks
// @Produce json
// @Success 200 {array} models.Task
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tasks [get]
// @Security Bearer
func GetAllTasks(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	tasks, err := services.ListTasks()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchTasks)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// [GET] GetTask
// @Summary Get a single task
// @Description Get one task with its rounds and elimination ledger
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [get]
// @Security Bearer
func GetTask(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	task, err := services.GetTask(c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// [POST] CreateTask
// @Summary Create a task
// @Description Create a task, either flat (optional single deadline) or staged (ordered rounds, first one active)
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body CreateTaskRequest true "Task definition"
// @Success 201 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /tasks [post]
// @Security Bearer
func CreateTask(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	task, err := services.CreateTask(services.TaskSpec{
		Title:               req.Title,
		Description:         req.Description,
		Creator:             user.Username,
		EvaluationMode:      req.EvaluationMode,
		ApplicationDeadline: req.ApplicationDeadline,
		Rounds:              req.Rounds,
	})
	if err != nil {
		response.AppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// [PUT] UpdateTask
// @Summary Update a task
// @Description Creator-only task update; rounds already reached cannot be removed
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tasks/{id} [put]
// @Security Bearer
func UpdateTask(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	task, err := services.UpdateTask(c.Param("id"), user.Username, services.TaskPatch{
		Title:               req.Title,
		Description:         req.Description,
		EvaluationMode:      req.EvaluationMode,
		ApplicationDeadline: req.ApplicationDeadline,
		Rounds:              req.Rounds,
	})
	if err != nil {
		response.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// [DELETE] DeleteTask
// @Summary Delete a task
// @Description Creator-only; cascades to rounds, applications, reviews and ledger entries
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [delete]
// @Security Bearer
func DeleteTask(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	refs, err := services.DeleteTask(c.Param("id"), user.Username)
	if err != nil {
		response.AppError(c, err)
		return
	}

	if storage.Files != nil {
		for _, ref := range refs {
			_ = storage.Files.Remove(ref)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// [PUT] TouchCreatorView
// @Summary Mark the task's applications as seen
// @Description Advance the creator's new-application watermark to now
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/touch-view [put]
// @Security Bearer
func TouchCreatorView(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	if err := services.TouchCreatorView(c.Param("id"), user.Username); err != nil {
		response.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "View marked"})
}
