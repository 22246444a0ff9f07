package applications

import (
	"net/http"

	"hub/metrics"
	"hub/middleware"
	"hub/realtime"
	"hub/services"
	"hub/storage"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
)

// [POST] SubmitApplication
// @Summary Submit an application
// @Description Submit a file to a task (flat mode) or to one of its rounds (staged mode, form field round_id). Eligibility is checked in order: target exists, round active / deadline open, applicant not eliminated, no duplicate.
// @Tags Applications
// @Accept multipart/form-data
// @Produce json
// @Param task_id path string true "Task ID"
// @Param round_id formData string false "Round ID (staged tasks)"
// @Param file formData file true "Submission file"
// @Success 201 {object} models.Application
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /applications/tasks/{task_id} [post]
// @Security Bearer
func SubmitApplication(c *gin.Context) {
	// Step 1: Authenticate the applicant
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	// Step 2: Parse the upload
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrNoFileUploaded)
		return
	}

	var roundID *string
	if v := c.PostForm("round_id"); v != "" {
		roundID = &v
	}

	// Step 3: Stage the artifact in the blob store under a fresh reference
	file, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrNoFileUploaded)
		return
	}
	defer file.Close()

	ref := storage.NewRef()
	if err := storage.Files.Save(ref, file); err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedStoreFile)
		return
	}

	// Step 4: Run the eligibility chain and record the application
	app, err := services.Submit(user.Username, user.UserID(), c.Param("task_id"), roundID, ref, header.Filename)
	if err != nil {
		// The artifact is orphaned if the submission was rejected
		_ = storage.Files.Remove(ref)
		response.AppError(c, err)
		return
	}

	// Step 5: Fan out to the creator's live view
	task, terr := services.OwningTask(app)
	if terr == nil {
		metrics.SubmissionsTotal.WithLabelValues(task.ID).Inc()
		go realtime.BroadcastSubmission(realtime.SubmissionUpdate{
			TaskID:      task.ID,
			Application: *app,
			UpdateType:  "submitted",
		})
	}

	c.JSON(http.StatusCreated, app)
}

// [GET] GetApplication
// @Summary Get a single application
// @Description Fetch one application; only its owner or the task creator may see it
// @Tags Applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} models.Application
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /applications/{id} [get]
// @Security Bearer
func GetApplication(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	// Same visibility rule as downloading the artifact
	app, err := services.AuthorizeDownload(c.Param("id"), user.Username)
	if err != nil {
		response.AppError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// [GET] GetTaskApplications
// @Summary List a task's applications
// @Description Creator-only list of every application on the task, flat and round-scoped alike
// @Tags Applications
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {array} models.Application
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /applications/tasks/{task_id} [get]
// @Security Bearer
func GetTaskApplications(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	taskID := c.Param("task_id")
	task, err := services.GetTask(taskID)
	if err != nil {
		response.AppError(c, err)
		return
	}
	if task.Creator != user.Username {
		response.Error(c, http.StatusForbidden, ErrNoPermissionList)
		return
	}

	apps, err := services.ListApplicationsByTask(taskID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchApps)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// [GET] GetRoundApplications
// @Summary List a round's applications
// @Description Creator-only list of the applications targeting one round
// @Tags Applications
// @Produce json
// @Param round_id path string true "Round ID"
// @Success 200 {array} models.Application
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /applications/rounds/{round_id} [get]
// @Security Bearer
func GetRoundApplications(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	apps, err := services.ListApplicationsByRound(c.Param("round_id"))
	if err != nil {
		response.AppError(c, err)
		return
	}

	if len(apps) > 0 {
		task, err := services.OwningTask(&apps[0])
		if err != nil {
			response.Error(c, http.StatusInternalServerError, ErrFailedFetchApps)
			return
		}
		if task.Creator != user.Username {
			response.Error(c, http.StatusForbidden, ErrNoPermissionList)
			return
		}
	}
	c.JSON(http.StatusOK, apps)
}

// [GET] GetOwnApplications
// @Summary List the caller's applications
// @Description All applications the authenticated applicant has submitted, with their tasks
// @Tags Applications
// @Produce json
// @Success 200 {array} models.Application
// @Failure 401 {object} map[string]string
// @Router /applications/mine [get]
// @Security Bearer
func GetOwnApplications(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	apps, err := services.ListApplicationsByApplicant(user.Username)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchApps)
		return
	}
	c.JSON(http.StatusOK, apps)
}
