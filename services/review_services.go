package services

import (
	"fmt"
	"time"

	"hub/database"
	"hub/models"
	"hub/utils/apperr"
)

// SaveReview records the creator's evaluation of an application. Which
// fields are legal is gated by the owning task's evaluation mode, and a
// disallowed field is rejected rather than dropped. Points must sit in
// [0,10]. The write overwrites any prior review as a whole; no history
// is kept.
func SaveReview(applicationID, username string, text *string, points *int) (*models.Application, error) {
	app, err := GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	task, err := OwningTask(app)
	if err != nil {
		return nil, err
	}
	if task.Creator != username {
		return nil, apperr.New(apperr.Authorization, "only the task creator can review applications")
	}

	if text != nil && *text == "" {
		text = nil
	}
	if text != nil && !task.AllowsText() {
		return nil, apperr.New(apperr.Validation, "evaluation mode %s does not accept review text", task.EvaluationMode)
	}
	if points != nil && !task.AllowsPoints() {
		return nil, apperr.New(apperr.Validation, "evaluation mode %s does not accept review points", task.EvaluationMode)
	}
	if points != nil && (*points < 0 || *points > 10) {
		return nil, apperr.New(apperr.Validation, "points must be between 0 and 10")
	}

	updates := map[string]interface{}{
		"review_text":   text,
		"review_points": points,
	}
	if text != nil || points != nil {
		updates["review_updated_at"] = time.Now()
	} else {
		updates["review_updated_at"] = nil
	}

	if err := database.DB.Model(&models.Application{}).Where("id = ?", app.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	InvalidateNotificationCache(app.Applicant)
	return GetApplication(applicationID)
}
