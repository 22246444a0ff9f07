package services

import (
	"errors"
	"fmt"
	"time"

	"hub/database"
	"hub/models"
	"hub/utils/apperr"
	"hub/utils/dates"

	"gorm.io/gorm"
)

// Submit runs the eligibility chain and records an application. The
// checks run in a fixed order so each failure mode is distinct:
// target exists, (staged) round is active / (flat) deadline not passed,
// applicant not eliminated, no prior application for the same target.
// Submission never mutates task or round state.
func Submit(applicant, applicantID, taskID string, roundID *string, fileRef, fileName string) (*models.Application, error) {
	task, err := GetTask(taskID)
	if err != nil {
		return nil, err
	}

	app := models.Application{
		Applicant:   applicant,
		ApplicantID: applicantID,
		FileRef:     fileRef,
		FileName:    fileName,
	}

	if task.Staged() {
		if roundID == nil {
			return nil, apperr.New(apperr.Validation, "a round must be targeted on a staged task")
		}
		var target *models.Round
		for _, r := range task.Rounds {
			if r.ID == *roundID {
				target = r
				break
			}
		}
		if target == nil {
			return nil, apperr.New(apperr.NotFound, "round not found in this task")
		}
		if !target.IsActive {
			return nil, apperr.New(apperr.RoundNotActive, "submissions are only accepted for the active round")
		}
		app.RoundID = roundID
	} else {
		if roundID != nil {
			return nil, apperr.New(apperr.NotFound, "task has no rounds")
		}
		if task.ApplicationDeadline != nil && dates.Before(*task.ApplicationDeadline, dates.Today()) {
			return nil, apperr.New(apperr.Validation, "application deadline %s has passed", *task.ApplicationDeadline)
		}
		app.TaskID = &task.ID
	}

	eliminated, err := IsEliminated(task.ID, applicant)
	if err != nil {
		return nil, err
	}
	if eliminated {
		return nil, apperr.New(apperr.Eliminated, "applicant has been eliminated from this competition")
	}

	var count int64
	dup := database.DB.Model(&models.Application{}).Where("applicant = ?", applicant)
	if app.RoundID != nil {
		dup = dup.Where("round_id = ?", *app.RoundID)
	} else {
		dup = dup.Where("task_id = ?", task.ID)
	}
	if err := dup.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check for duplicate application: %w", err)
	}
	if count > 0 {
		return nil, apperr.New(apperr.DuplicateApplication, "an application for this target already exists")
	}

	app.SubmittedAt = time.Now()
	if err := database.DB.Create(&app).Error; err != nil {
		// The unique index backstops the duplicate check under races
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.DuplicateApplication, "an application for this target already exists")
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	InvalidateNotificationCache(task.Creator)
	return &app, nil
}

// GetApplication fetches a single application with its target
func GetApplication(id string) (*models.Application, error) {
	var app models.Application
	err := database.DB.Preload("Task").Preload("Round").First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "application not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	return &app, nil
}

// ListApplicationsByTask returns every application on the task, flat ones
// and round-scoped ones alike
func ListApplicationsByTask(taskID string) ([]models.Application, error) {
	if _, err := GetTask(taskID); err != nil {
		return nil, err
	}
	var apps []models.Application
	err := database.DB.Preload("Round").
		Where("task_id = ? OR round_id IN (SELECT id FROM rounds WHERE task_id = ?)", taskID, taskID).
		Order("submitted_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return apps, nil
}

// ListApplicationsByRound returns the applications targeting one round
func ListApplicationsByRound(roundID string) ([]models.Application, error) {
	var round models.Round
	if err := database.DB.First(&round, "id = ?", roundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "round not found")
		}
		return nil, fmt.Errorf("failed to fetch round: %w", err)
	}
	var apps []models.Application
	err := database.DB.Where("round_id = ?", roundID).Order("submitted_at ASC").Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return apps, nil
}

// ListApplicationsByApplicant returns the applicant's applications with
// their owning tasks resolved for display
func ListApplicationsByApplicant(applicant string) ([]models.Application, error) {
	var apps []models.Application
	err := database.DB.Preload("Task").Preload("Round").Preload("Round.Task").
		Where("applicant = ?", applicant).
		Order("submitted_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return apps, nil
}

// AuthorizeDownload checks that the requester may receive the file
// reference: either the application's owner or the owning task's creator
func AuthorizeDownload(applicationID, username string) (*models.Application, error) {
	app, err := GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	task, err := OwningTask(app)
	if err != nil {
		return nil, err
	}
	if app.Applicant != username && task.Creator != username {
		return nil, apperr.New(apperr.Authorization, "not allowed to download this application")
	}
	return app, nil
}

// OwningTask resolves the task an application belongs to, through its
// round for staged submissions
func OwningTask(app *models.Application) (*models.Task, error) {
	if app.TaskID != nil {
		return GetTask(*app.TaskID)
	}
	if app.RoundID != nil {
		var round models.Round
		if err := database.DB.First(&round, "id = ?", *app.RoundID).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve application round: %w", err)
		}
		return GetTask(round.TaskID)
	}
	return nil, apperr.New(apperr.NotFound, "application has no target")
}
