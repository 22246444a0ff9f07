package tasks

import (
	"fmt"
	"net/http"

	"hub/middleware"
	"hub/services"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// [GET] ExportTaskApplicationsExcel
// @Summary Export a task's applications to Excel
// @Description Creator-only export of every application on the task, with review state, as an xlsx workbook
// @Tags Tasks
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Task ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/export [get]
// @Security Bearer
func ExportTaskApplicationsExcel(c *gin.Context) {
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
		response.Error(c, http.StatusForbidden, ErrNoPermissionExport)
		return
	}

	apps, err := services.ListApplicationsByTask(taskID)
	if err != nil {
		response.AppError(c, err)
		return
	}

	ledger := make(map[string]bool)
	for _, e := range task.Eliminations {
		ledger[e.Applicant] = true
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	sheet := "Applications"
	xlsx.SetSheetName("Sheet1", sheet)

	headers := []string{"Applicant", "Round", "Submitted at", "File", "Review text", "Points", "Eliminated"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xlsx.SetCellValue(sheet, cell, h)
	}

	roundLabels := make(map[string]string)
	for _, r := range task.Rounds {
		roundLabels[r.ID] = fmt.Sprintf("Round %d (%s)", r.Position+1, r.Deadline)
	}

	for row, app := range apps {
		roundLabel := "-"
		if app.RoundID != nil {
			roundLabel = roundLabels[*app.RoundID]
		}
		reviewText, points := "", ""
		if app.ReviewText != nil {
			reviewText = *app.ReviewText
		}
		if app.ReviewPoints != nil {
			points = fmt.Sprintf("%d", *app.ReviewPoints)
		}
		values := []interface{}{
			app.Applicant,
			roundLabel,
			app.SubmittedAt.Format("2006-01-02 15:04"),
			app.FileName,
			reviewText,
			points,
			ledger[app.Applicant],
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			xlsx.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-applications.xlsx\"", task.ID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := xlsx.Write(c.Writer); err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedExportTask)
	}
}
