package services

import (
	"fmt"
	"time"

	"hub/database"
	"hub/metrics"
	"hub/models"
	"hub/utils/apperr"
)

// TaskCount is one notification item: the task it points at, its title
// for display, and how many unseen events of the class it carries. The
// client routes a click on the item to the matching view and calls the
// corresponding touch endpoint.
type TaskCount struct {
	TaskID    string `json:"task_id"`
	TaskTitle string `json:"task_title"`
	Count     int64  `json:"count"`
}

// NotificationSummary aggregates the four independent event classes for
// one identity. Badge is the total across all classes.
type NotificationSummary struct {
	NewApplications  []TaskCount `json:"new_applications"`
	NewReviews       []TaskCount `json:"new_reviews"`
	Eliminations     []TaskCount `json:"eliminations"`
	RoundActivations []TaskCount `json:"round_activations"`
	Badge            int64       `json:"badge"`
}

// CreatorApplicationCounts returns, per task the creator owns, the number
// of applications submitted after the creator's last view of the task
func CreatorApplicationCounts(creator string) ([]TaskCount, error) {
	defer metrics.RecordDBOperation("count_new_applications", "applications", time.Now())
	var counts []TaskCount
	err := database.DB.Raw(`
        SELECT t.id AS task_id, t.title AS task_title, COUNT(a.id) AS count
        FROM applications a
        LEFT JOIN rounds r ON a.round_id = r.id
        JOIN tasks t ON t.id = COALESCE(a.task_id, r.task_id)
        WHERE t.creator = ?
          AND (t.creator_last_viewed_at IS NULL OR a.submitted_at > t.creator_last_viewed_at)
        GROUP BY t.id, t.title
    `, creator).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count new applications: %w", err)
	}
	return counts, nil
}

// ApplicantReviewCounts returns, per task, the applicant's applications
// whose review changed after the applicant last viewed reviews there
func ApplicantReviewCounts(applicant string) ([]TaskCount, error) {
	defer metrics.RecordDBOperation("count_new_reviews", "applications", time.Now())
	var counts []TaskCount
	err := database.DB.Raw(`
        SELECT t.id AS task_id, t.title AS task_title, COUNT(a.id) AS count
        FROM applications a
        LEFT JOIN rounds r ON a.round_id = r.id
        JOIN tasks t ON t.id = COALESCE(a.task_id, r.task_id)
        WHERE a.applicant = ?
          AND (a.review_text IS NOT NULL OR a.review_points IS NOT NULL)
          AND a.review_updated_at IS NOT NULL
          AND (a.review_viewed_at IS NULL OR a.review_viewed_at < a.review_updated_at)
        GROUP BY t.id, t.title
    `, applicant).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count new reviews: %w", err)
	}
	return counts, nil
}

// ApplicantEliminationNotifications returns the tasks the applicant has
// applied to where the ledger gained their name after their last view
func ApplicantEliminationNotifications(applicant string) ([]TaskCount, error) {
	defer metrics.RecordDBOperation("count_eliminations", "eliminations", time.Now())
	var counts []TaskCount
	err := database.DB.Raw(`
        SELECT t.id AS task_id, t.title AS task_title, COUNT(e.id) AS count
        FROM eliminations e
        JOIN tasks t ON t.id = e.task_id
        WHERE e.applicant = ?
          AND EXISTS (
              SELECT 1 FROM applications a
              LEFT JOIN rounds r ON a.round_id = r.id
              WHERE a.applicant = e.applicant
                AND COALESCE(a.task_id, r.task_id) = t.id
                AND (a.elimination_viewed_at IS NULL OR a.elimination_viewed_at < e.eliminated_at)
          )
        GROUP BY t.id, t.title
    `, applicant).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count eliminations: %w", err)
	}
	return counts, nil
}

// ApplicantRoundActivationNotifications returns, per task the applicant
// is still in, the rounds activated after the applicant's last view.
// Eliminated applicants no longer receive activation notifications.
func ApplicantRoundActivationNotifications(applicant string) ([]TaskCount, error) {
	defer metrics.RecordDBOperation("count_round_activations", "rounds", time.Now())
	var counts []TaskCount
	err := database.DB.Raw(`
        SELECT t.id AS task_id, t.title AS task_title, COUNT(DISTINCT ra.id) AS count
        FROM applications a
        JOIN rounds r ON a.round_id = r.id
        JOIN tasks t ON t.id = r.task_id
        JOIN rounds ra ON ra.task_id = t.id AND ra.activated_at IS NOT NULL
        WHERE a.applicant = ?
          AND NOT EXISTS (
              SELECT 1 FROM eliminations e WHERE e.task_id = t.id AND e.applicant = a.applicant
          )
          AND (a.round_activation_viewed_at IS NULL OR ra.activated_at > a.round_activation_viewed_at)
        GROUP BY t.id, t.title
    `, applicant).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count round activations: %w", err)
	}
	return counts, nil
}

// GetNotificationSummary computes all four classes for one identity,
// serving from the short-lived cache when a fresh copy exists
func GetNotificationSummary(username string) (*NotificationSummary, error) {
	if cached, ok := GetCachedSummary(username); ok {
		return cached, nil
	}

	apps, err := CreatorApplicationCounts(username)
	if err != nil {
		return nil, err
	}
	reviews, err := ApplicantReviewCounts(username)
	if err != nil {
		return nil, err
	}
	eliminations, err := ApplicantEliminationNotifications(username)
	if err != nil {
		return nil, err
	}
	activations, err := ApplicantRoundActivationNotifications(username)
	if err != nil {
		return nil, err
	}

	summary := &NotificationSummary{
		NewApplications:  apps,
		NewReviews:       reviews,
		Eliminations:     eliminations,
		RoundActivations: activations,
	}
	for _, classCounts := range [][]TaskCount{apps, reviews, eliminations, activations} {
		for _, tc := range classCounts {
			summary.Badge += tc.Count
		}
	}

	StoreCachedSummary(username, summary)
	return summary, nil
}

// TouchReviewView advances the applicant's review watermark for the task
func TouchReviewView(taskID, applicant string) error {
	return touchApplicantView(taskID, applicant, "review_viewed_at")
}

// TouchEliminationView advances the applicant's elimination watermark
func TouchEliminationView(taskID, applicant string) error {
	return touchApplicantView(taskID, applicant, "elimination_viewed_at")
}

// TouchRoundActivationView advances the applicant's round-activation watermark
func TouchRoundActivationView(taskID, applicant string) error {
	return touchApplicantView(taskID, applicant, "round_activation_viewed_at")
}

// touchApplicantView stamps the given watermark column on all of the
// applicant's applications for the task. Calling it again immediately
// only moves the watermark forward, so repeated calls are harmless.
func touchApplicantView(taskID, applicant, column string) error {
	res := database.DB.Model(&models.Application{}).
		Where("applicant = ? AND (task_id = ? OR round_id IN (SELECT id FROM rounds WHERE task_id = ?))",
			applicant, taskID, taskID).
		Update(column, time.Now())
	if res.Error != nil {
		return fmt.Errorf("failed to touch %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "no applications for this task")
	}
	InvalidateNotificationCache(applicant)
	return nil
}
