package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Elimination is one entry of a task's elimination ledger. Entries are
// insertion-only: elimination is permanent for the remainder of the
// competition and there is no reinstate path.
type Elimination struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	TaskID       string    `gorm:"type:uuid;not null;column:task_id;uniqueIndex:idx_task_applicant" json:"task_id"`
	Applicant    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_task_applicant" json:"applicant"`
	EliminatedAt time.Time `gorm:"not null;column:eliminated_at" json:"eliminated_at"`
	Task         *Task     `gorm:"foreignKey:TaskID" json:"-"`
}

func (e *Elimination) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
