package notifications

import (
	"net/http"

	"hub/middleware"
	"hub/services"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
)

const ErrFailedFetchNotifications = "Failed to fetch notifications"

// [GET] GetSummary
// @Summary Get the caller's notification summary
// @Description All four notification classes for the authenticated user plus the aggregate badge count
// @Tags Notifications
// @Produce json
// @Success 200 {object} services.NotificationSummary
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/summary [get]
// @Security Bearer
func GetSummary(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	summary, err := services.GetNotificationSummary(user.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchNotifications)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// [GET] GetNewApplicationCounts
// @Summary Get new-application counts (creator)
// @Description Per task the caller created, how many applications arrived since the creator last viewed the task
// @Tags Notifications
// @Produce json
// @Success 200 {array} services.TaskCount
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/applications [get]
// @Security Bearer
func GetNewApplicationCounts(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	counts, err := services.CreatorApplicationCounts(user.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchNotifications)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// [GET] GetNewReviewCounts
// @Summary Get new-review counts (applicant)
// @Description Per task, the caller's applications whose review changed since the caller last viewed reviews there
// @Tags Notifications
// @Produce json
// @Success 200 {array} services.TaskCount
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/reviews [get]
// @Security Bearer
func GetNewReviewCounts(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	counts, err := services.ApplicantReviewCounts(user.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchNotifications)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// [GET] GetEliminationNotifications
// @Summary Get unseen eliminations (applicant)
// @Description Tasks where the caller entered the elimination ledger since their last view
// @Tags Notifications
// @Produce json
// @Success 200 {array} services.TaskCount
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/eliminations [get]
// @Security Bearer
func GetEliminationNotifications(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	counts, err := services.ApplicantEliminationNotifications(user.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchNotifications)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// [GET] GetRoundActivationNotifications
// @Summary Get unseen round activations (applicant)
// @Description Tasks the caller applied to whose active round changed since their last view
// @Tags Notifications
// @Produce json
// @Success 200 {array} services.TaskCount
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications/round-activations [get]
// @Security Bearer
func GetRoundActivationNotifications(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	counts, err := services.ApplicantRoundActivationNotifications(user.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchNotifications)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// [PUT] TouchReviewView
// @Summary Mark the task's reviews as seen
// @Tags Notifications
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /notifications/tasks/{task_id}/reviews/touch [put]
// @Security Bearer
func TouchReviewView(c *gin.Context) {
	touch(c, services.TouchReviewView)
}

// [PUT] TouchEliminationView
// @Summary Mark the task's elimination as seen
// @Tags Notifications
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /notifications/tasks/{task_id}/eliminations/touch [put]
// @Security Bearer
func TouchEliminationView(c *gin.Context) {
	touch(c, services.TouchEliminationView)
}

// [PUT] TouchRoundActivationView
// @Summary Mark the task's round activations as seen
// @Tags Notifications
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /notifications/tasks/{task_id}/round-activations/touch [put]
// @Security Bearer
func TouchRoundActivationView(c *gin.Context) {
	touch(c, services.TouchRoundActivationView)
}

func touch(c *gin.Context, fn func(taskID, applicant string) error) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	if err := fn(c.Param("task_id"), user.Username); err != nil {
		response.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "View marked"})
}
