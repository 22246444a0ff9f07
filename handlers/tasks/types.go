package tasks

import (
	"hub/services"
)

// Constants for error messages
const (
	ErrTaskNotFound        = "Task not found"
	ErrInvalidRequest      = "Invalid request data"
	ErrFailedFetchTasks    = "Failed to fetch tasks"
	ErrFailedCreateTask    = "Failed to create task"
	ErrFailedUpdateTask    = "Failed to update task"
	ErrFailedDeleteTask    = "Failed to delete task"
	ErrFailedExportTask    = "Failed to export task data"
	ErrNoPermissionExport  = "Only the task creator can export applications"
	ErrNoPermissionLive    = "Only the task creator can watch live submissions"
)

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Title               string               `json:"title" binding:"required"`
	Description         string               `json:"description" binding:"required"`
	EvaluationMode      string               `json:"evaluation_mode" binding:"required"`
	ApplicationDeadline *string              `json:"application_deadline"`
	Rounds              []services.RoundSpec `json:"rounds"`
}

// UpdateTaskRequest is the payload for updating a task; omitted fields
// are left untouched
type UpdateTaskRequest struct {
	Title               *string               `json:"title"`
	Description         *string               `json:"description"`
	EvaluationMode      *string               `json:"evaluation_mode"`
	ApplicationDeadline *string               `json:"application_deadline"`
	Rounds              *[]services.RoundSpec `json:"rounds"`
}

// EliminateRequest carries the identities to add to the ledger
type EliminateRequest struct {
	Applicants []string `json:"applicants" binding:"required"`
}
