package services

import (
	"fmt"
	"sort"
	"time"

	"hub/database"
	"hub/models"
	"hub/utils/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Eliminate adds the given applicants to the task's elimination ledger.
// The operation is a set union: identities already in the ledger are left
// untouched, so repeating a call is a no-op rather than an error. There
// is no reverse operation; elimination holds for the rest of the
// competition. Returns the resulting full ledger.
func Eliminate(taskID, username string, applicants []string) ([]string, error) {
	task, err := GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Creator != username {
		return nil, apperr.New(apperr.Authorization, "only the task creator can eliminate applicants")
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]bool, len(applicants))
		for _, applicant := range applicants {
			if applicant == "" || seen[applicant] {
				continue
			}
			seen[applicant] = true
			entry := models.Elimination{TaskID: taskID, Applicant: applicant, EliminatedAt: now}
			// The unique index absorbs entries already in the ledger,
			// including ones a concurrent caller got in first; the
			// earlier timestamp stands
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to record elimination: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, applicant := range applicants {
		InvalidateNotificationCache(applicant)
	}
	return ListEliminated(taskID)
}

// ListEliminated returns the task's full ledger, sorted for stable output
func ListEliminated(taskID string) ([]string, error) {
	var entries []models.Elimination
	if err := database.DB.Where("task_id = ?", taskID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch elimination ledger: %w", err)
	}
	ledger := make([]string, 0, len(entries))
	for _, e := range entries {
		ledger = append(ledger, e.Applicant)
	}
	sort.Strings(ledger)
	return ledger, nil
}

// IsEliminated reports whether the applicant appears in the task's ledger
func IsEliminated(taskID, applicant string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Elimination{}).
		Where("task_id = ? AND applicant = ?", taskID, applicant).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check elimination ledger: %w", err)
	}
	return count > 0, nil
}
