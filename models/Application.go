package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application represents an applicant's file submission. Exactly one of
// TaskID (flat mode) or RoundID (staged mode) is set. The three applicant
// watermark columns track the last time the applicant viewed the
// corresponding notification class for the owning task.
type Application struct {
	ID          string  `gorm:"type:uuid;primary_key" json:"id"`
	TaskID      *string `gorm:"type:uuid;column:task_id;uniqueIndex:idx_applicant_task" json:"task_id"`
	RoundID     *string `gorm:"type:uuid;column:round_id;uniqueIndex:idx_applicant_round" json:"round_id"`
	Applicant   string  `gorm:"type:varchar(100);not null;index;uniqueIndex:idx_applicant_task;uniqueIndex:idx_applicant_round" json:"applicant"`
	ApplicantID string  `gorm:"type:varchar(100);not null;column:applicant_id" json:"applicant_id"`

	SubmittedAt time.Time `gorm:"not null;column:submitted_at" json:"submitted_at"`
	FileRef     string    `gorm:"type:varchar(255);not null;column:file_ref" json:"-"`
	FileName    string    `gorm:"type:varchar(255);not null;column:file_name" json:"file_name"`

	ReviewText      *string    `gorm:"type:text;column:review_text" json:"review_text"`
	ReviewPoints    *int       `gorm:"type:integer;column:review_points" json:"review_points"`
	ReviewUpdatedAt *time.Time `gorm:"column:review_updated_at" json:"review_updated_at"`

	ReviewViewedAt          *time.Time `gorm:"column:review_viewed_at" json:"-"`
	EliminationViewedAt     *time.Time `gorm:"column:elimination_viewed_at" json:"-"`
	RoundActivationViewedAt *time.Time `gorm:"column:round_activation_viewed_at" json:"-"`

	Task  *Task  `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Round *Round `gorm:"foreignKey:RoundID" json:"round,omitempty"`
}

// Reviewed reports whether a review has been recorded for the application
func (a *Application) Reviewed() bool {
	return a.ReviewText != nil || a.ReviewPoints != nil
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
