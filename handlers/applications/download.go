package applications

import (
	"fmt"
	"io"
	"net/http"

	"hub/middleware"
	"hub/services"
	"hub/storage"
	"hub/utils/response"

	"github.com/gin-gonic/gin"
)

// [GET] DownloadApplicationFile
// @Summary Download an application's file
// @Description Serve the submitted artifact; only the application's owner or the task creator may download it
// @Tags Applications
// @Produce application/octet-stream
// @Param id path string true "Application ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /applications/{id}/download [get]
// @Security Bearer
func DownloadApplicationFile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	app, err := services.AuthorizeDownload(c.Param("id"), user.Username)
	if err != nil {
		response.AppError(c, err)
		return
	}

	reader, err := storage.Files.Open(app.FileRef)
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrArtifactUnavailable)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", app.FileName))
	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Response already streaming, nothing left to send
		return
	}
}
