package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Evaluation modes controlling which review fields are legal for a task
const (
	EvaluationText   = "TEXT"
	EvaluationPoints = "POINTS"
	EvaluationBoth   = "BOTH"
)

// Task represents a competition owned by a creator, either with a single
// flat application deadline or with an ordered chain of rounds
type Task struct {
	ID                  string         `gorm:"type:uuid;primary_key" json:"id"`
	Title               string         `gorm:"type:varchar(100);not null" json:"title"`
	Description         string         `gorm:"type:text;not null" json:"description"`
	Creator             string         `gorm:"type:varchar(100);not null;index" json:"creator"`
	EvaluationMode      string         `gorm:"type:varchar(10);not null" json:"evaluation_mode"`
	ApplicationDeadline *string        `gorm:"type:varchar(10);column:application_deadline" json:"application_deadline"`
	CreatorLastViewedAt *time.Time     `gorm:"column:creator_last_viewed_at" json:"creator_last_viewed_at"`
	Rounds              []*Round       `gorm:"foreignKey:TaskID" json:"rounds"`
	Eliminations        []*Elimination `gorm:"foreignKey:TaskID" json:"eliminations"`
}

// ValidEvaluationMode reports whether mode is one of the three defined modes
func ValidEvaluationMode(mode string) bool {
	return mode == EvaluationText || mode == EvaluationPoints || mode == EvaluationBoth
}

// AllowsText reports whether the task's evaluation mode permits review text
func (t *Task) AllowsText() bool {
	return t.EvaluationMode == EvaluationText || t.EvaluationMode == EvaluationBoth
}

// AllowsPoints reports whether the task's evaluation mode permits review points
func (t *Task) AllowsPoints() bool {
	return t.EvaluationMode == EvaluationPoints || t.EvaluationMode == EvaluationBoth
}

// Staged reports whether the task runs in round mode rather than flat mode
func (t *Task) Staged() bool {
	return len(t.Rounds) > 0
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
