package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Round represents one ordered stage of a staged task. At most one round
// per task is active at any time; activation only moves forward, one step
// at a time, through the explicit activate-next transition.
type Round struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	TaskID      string     `gorm:"type:uuid;not null;index;column:task_id" json:"task_id"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Deadline    string     `gorm:"type:varchar(10);not null" json:"deadline"`
	Position    int        `gorm:"type:integer;not null" json:"position"`
	IsActive    bool       `gorm:"not null;default:false;column:is_active" json:"is_active"`
	ActivatedAt *time.Time `gorm:"column:activated_at" json:"activated_at"`
	Task        *Task      `gorm:"foreignKey:TaskID" json:"-"`
}

func (r *Round) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
