package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"hub/database"
	"hub/models"
	"hub/utils/apperr"
	"hub/utils/dates"

	"gorm.io/gorm"
)

// RoundSpec describes one round of a task being created or updated
type RoundSpec struct {
	Description string `json:"description" binding:"required"`
	Deadline    string `json:"deadline" binding:"required"`
}

// TaskSpec describes a task being created
type TaskSpec struct {
	Title               string
	Description         string
	Creator             string
	EvaluationMode      string
	ApplicationDeadline *string
	Rounds              []RoundSpec
}

// TaskPatch describes a creator-side task update; nil fields are untouched
type TaskPatch struct {
	Title               *string
	Description         *string
	EvaluationMode      *string
	ApplicationDeadline *string
	Rounds              *[]RoundSpec
}

// CreateTask validates and persists a task together with its rounds.
// Rounds are ordered by deadline and assigned sequential positions; the
// first round is activated at creation, all others start inactive.
func CreateTask(spec TaskSpec) (*models.Task, error) {
	if spec.Title == "" {
		return nil, apperr.New(apperr.Validation, "title must not be empty")
	}
	if spec.Description == "" {
		return nil, apperr.New(apperr.Validation, "description must not be empty")
	}
	if !models.ValidEvaluationMode(spec.EvaluationMode) {
		return nil, apperr.New(apperr.Validation, "evaluation mode must be TEXT, POINTS or BOTH")
	}

	task := models.Task{
		Title:          spec.Title,
		Description:    spec.Description,
		Creator:        spec.Creator,
		EvaluationMode: spec.EvaluationMode,
	}

	today := dates.Today()
	if len(spec.Rounds) > 0 {
		// Staged mode: the flat deadline has no meaning
		if spec.ApplicationDeadline != nil {
			return nil, apperr.New(apperr.Validation, "a task with rounds cannot carry a flat application deadline")
		}
		rounds, err := buildRounds(spec.Rounds, today)
		if err != nil {
			return nil, err
		}
		task.Rounds = rounds
	} else if spec.ApplicationDeadline != nil {
		if err := validateDeadline(*spec.ApplicationDeadline, today); err != nil {
			return nil, err
		}
		task.ApplicationDeadline = spec.ApplicationDeadline
	}

	if err := database.DB.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// buildRounds sorts the specs by deadline and materializes round records
// with sequential positions, the first one active
func buildRounds(specs []RoundSpec, today string) ([]*models.Round, error) {
	sorted := make([]RoundSpec, len(specs))
	copy(sorted, specs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Deadline < sorted[j].Deadline
	})

	rounds := make([]*models.Round, 0, len(sorted))
	for i, rs := range sorted {
		if rs.Description == "" {
			return nil, apperr.New(apperr.Validation, "round %d: description must not be empty", i+1)
		}
		if err := validateDeadline(rs.Deadline, today); err != nil {
			return nil, err
		}
		rounds = append(rounds, &models.Round{
			Description: rs.Description,
			Deadline:    rs.Deadline,
			Position:    i,
			IsActive:    i == 0,
		})
	}
	return rounds, nil
}

func validateDeadline(deadline, today string) error {
	if _, err := dates.Parse(deadline); err != nil {
		return apperr.New(apperr.Validation, "%s", err.Error())
	}
	if dates.Before(deadline, today) {
		return apperr.New(apperr.Validation, "deadline %s is earlier than today", deadline)
	}
	return nil
}

// GetTask fetches a task with its rounds (ordered by position) and ledger
func GetTask(id string) (*models.Task, error) {
	var task models.Task
	err := database.DB.
		Preload("Rounds", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Eliminations").
		First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return &task, nil
}

// ListTasks returns all tasks with their rounds
func ListTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := database.DB.
		Preload("Rounds", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Eliminations").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a creator-side patch. The flat deadline is only
// updatable while the task has zero rounds; rounds the competition has
// already reached cannot be removed; once applications exist the task can
// neither switch between flat and staged shape nor change its evaluation
// mode.
func UpdateTask(id, username string, patch TaskPatch) (*models.Task, error) {
	task, err := GetTask(id)
	if err != nil {
		return nil, err
	}
	if task.Creator != username {
		return nil, apperr.New(apperr.Authorization, "only the task creator can update the task")
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apperr.New(apperr.Validation, "title must not be empty")
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return nil, apperr.New(apperr.Validation, "description must not be empty")
		}
		task.Description = *patch.Description
	}

	hasApps, err := taskHasApplications(task.ID)
	if err != nil {
		return nil, err
	}

	if patch.EvaluationMode != nil && *patch.EvaluationMode != task.EvaluationMode {
		if !models.ValidEvaluationMode(*patch.EvaluationMode) {
			return nil, apperr.New(apperr.Validation, "evaluation mode must be TEXT, POINTS or BOTH")
		}
		if hasApps {
			return nil, apperr.New(apperr.Validation, "evaluation mode cannot change once applications exist")
		}
		task.EvaluationMode = *patch.EvaluationMode
	}

	today := dates.Today()
	if patch.ApplicationDeadline != nil {
		// The deadline is judged against the shape the task will have
		// after this patch, not the shape it had before
		stagedAfter := len(task.Rounds) > 0
		if patch.Rounds != nil {
			stagedAfter = len(*patch.Rounds) > 0
		}
		if stagedAfter {
			return nil, apperr.New(apperr.Validation, "a task with rounds cannot carry a flat application deadline")
		}
		if err := validateDeadline(*patch.ApplicationDeadline, today); err != nil {
			return nil, err
		}
		task.ApplicationDeadline = patch.ApplicationDeadline
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if patch.Rounds != nil {
			if err := applyRoundPatch(tx, task, *patch.Rounds, hasApps, today); err != nil {
				return err
			}
			// A task that now has rounds is staged; the flat deadline
			// has no meaning in that shape
			if len(*patch.Rounds) > 0 {
				task.ApplicationDeadline = nil
			}
		}
		return tx.Model(&models.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
			"title":                task.Title,
			"description":          task.Description,
			"evaluation_mode":      task.EvaluationMode,
			"application_deadline": task.ApplicationDeadline,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return GetTask(id)
}

// applyRoundPatch reconciles the task's persisted rounds with the patched
// list. Positions up to and including the active one are frozen except for
// description edits; positions past the active one may be edited, added,
// or dropped.
func applyRoundPatch(tx *gorm.DB, task *models.Task, specs []RoundSpec, hasApps bool, today string) error {
	if hasApps && (len(task.Rounds) == 0) != (len(specs) == 0) {
		return apperr.New(apperr.Validation, "task mode cannot change once applications exist")
	}

	reached := -1 // highest position the competition has reached
	for i, r := range task.Rounds {
		if r.IsActive || r.ActivatedAt != nil {
			reached = i
		}
	}
	if reached >= 0 && len(specs) <= reached {
		return apperr.New(apperr.InvalidState, "rounds already reached cannot be removed")
	}

	for i, rs := range specs {
		if rs.Description == "" {
			return apperr.New(apperr.Validation, "round %d: description must not be empty", i+1)
		}
		if i < len(task.Rounds) {
			round := task.Rounds[i]
			updates := map[string]interface{}{"description": rs.Description}
			if i > reached && rs.Deadline != round.Deadline {
				if err := validateDeadline(rs.Deadline, today); err != nil {
					return err
				}
				updates["deadline"] = rs.Deadline
			}
			if err := tx.Model(&models.Round{}).Where("id = ?", round.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update round: %w", err)
			}
			continue
		}
		if err := validateDeadline(rs.Deadline, today); err != nil {
			return err
		}
		round := models.Round{
			TaskID:      task.ID,
			Description: rs.Description,
			Deadline:    rs.Deadline,
			Position:    i,
			IsActive:    len(task.Rounds) == 0 && i == 0,
		}
		if err := tx.Create(&round).Error; err != nil {
			return fmt.Errorf("failed to create round: %w", err)
		}
	}

	// Drop future rounds beyond the patched list
	if len(specs) < len(task.Rounds) {
		for _, r := range task.Rounds[len(specs):] {
			if err := tx.Delete(&models.Round{}, "id = ?", r.ID).Error; err != nil {
				return fmt.Errorf("failed to remove round: %w", err)
			}
		}
	}
	return nil
}

// ActivateNextRound advances the task to its next round. The transition is
// gated on the active round's deadline being strictly before today, and
// the deactivation is a compare-and-swap so a concurrent caller cannot
// double-advance.
func ActivateNextRound(id string) (*models.Round, error) {
	var next models.Round

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var rounds []models.Round
		if err := tx.Where("task_id = ?", id).Order("position ASC").Find(&rounds).Error; err != nil {
			return fmt.Errorf("failed to fetch rounds: %w", err)
		}
		if len(rounds) == 0 {
			if exists, err := taskExists(tx, id); err != nil {
				return err
			} else if !exists {
				return apperr.New(apperr.NotFound, "task not found")
			}
			return apperr.New(apperr.InvalidState, "task has no rounds")
		}

		activeIdx := -1
		for i := range rounds {
			if rounds[i].IsActive {
				activeIdx = i
				break
			}
		}
		if activeIdx == -1 {
			return apperr.New(apperr.InvalidState, "no active round to advance from")
		}

		current := rounds[activeIdx]
		today := dates.Today()
		if !dates.Before(current.Deadline, today) {
			remaining := dates.DaysUntil(current.Deadline)
			return apperr.New(apperr.InvalidState,
				"current round deadline %s has not passed yet (%d day(s) remaining)", current.Deadline, remaining)
		}
		if activeIdx == len(rounds)-1 {
			return apperr.New(apperr.InvalidState, "no next round to activate")
		}

		// CAS on the deactivation: a losing concurrent caller sees zero
		// affected rows and fails instead of double-advancing
		res := tx.Model(&models.Round{}).
			Where("id = ? AND is_active = ?", current.ID, true).
			Update("is_active", false)
		if res.Error != nil {
			return fmt.Errorf("failed to deactivate round: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.InvalidState, "round was advanced by a concurrent request")
		}

		now := time.Now()
		next = rounds[activeIdx+1]
		if err := tx.Model(&models.Round{}).Where("id = ?", next.ID).Updates(map[string]interface{}{
			"is_active":    true,
			"activated_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to activate round: %w", err)
		}
		next.IsActive = true
		next.ActivatedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The new active round changes the activation badge of everyone
	// following the task; drop their cached summaries
	var applicants []string
	if err := database.DB.Model(&models.Application{}).
		Where("task_id = ? OR round_id IN (SELECT id FROM rounds WHERE task_id = ?)", id, id).
		Distinct().
		Pluck("applicant", &applicants).Error; err == nil {
		for _, applicant := range applicants {
			InvalidateNotificationCache(applicant)
		}
	}
	return &next, nil
}

// DeleteTask removes a task and everything hanging off it: rounds,
// applications, reviews (embedded in applications) and ledger entries.
// It returns the file references of the deleted applications so the
// caller can clean up the blob store.
func DeleteTask(id, username string) ([]string, error) {
	task, err := GetTask(id)
	if err != nil {
		return nil, err
	}
	if task.Creator != username {
		return nil, apperr.New(apperr.Authorization, "only the task creator can delete the task")
	}

	apps, err := ListApplicationsByTask(id)
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(apps))
	for _, a := range apps {
		refs = append(refs, a.FileRef)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? OR round_id IN (SELECT id FROM rounds WHERE task_id = ?)", id, id).
			Delete(&models.Application{}).Error; err != nil {
			return fmt.Errorf("failed to delete applications: %w", err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Elimination{}).Error; err != nil {
			return fmt.Errorf("failed to delete eliminations: %w", err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Round{}).Error; err != nil {
			return fmt.Errorf("failed to delete rounds: %w", err)
		}
		if err := tx.Delete(&models.Task{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// TouchCreatorView advances the creator's new-application watermark to now
func TouchCreatorView(id, username string) error {
	task, err := GetTask(id)
	if err != nil {
		return err
	}
	if task.Creator != username {
		return apperr.New(apperr.Authorization, "only the task creator can mark applications as seen")
	}
	now := time.Now()
	if err := database.DB.Model(&models.Task{}).Where("id = ?", id).
		Update("creator_last_viewed_at", now).Error; err != nil {
		return fmt.Errorf("failed to touch creator view: %w", err)
	}
	InvalidateNotificationCache(username)
	return nil
}

func taskExists(tx *gorm.DB, id string) (bool, error) {
	var count int64
	if err := tx.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}
	return count > 0, nil
}

func taskHasApplications(taskID string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Application{}).
		Where("task_id = ? OR round_id IN (SELECT id FROM rounds WHERE task_id = ?)", taskID, taskID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count applications: %w", err)
	}
	return count > 0, nil
}
