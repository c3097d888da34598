package model

import (
	"time"

	"productivity-tracker.com/productivity-tracker/internal/constants"
)

type Task struct {
	ID                uint                   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title             string                 `gorm:"not null" json:"title"`
	Description       string                 `json:"description"`
	Status            constants.TaskStatus   `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Priority          constants.TaskPriority `gorm:"type:varchar(20);not null;default:medium" json:"priority"`
	CreatedDate       time.Time              `gorm:"not null" json:"created_date"`
	DueDate           *time.Time             `gorm:"index" json:"due_date,omitempty"`
	CompletedDate     *time.Time             `json:"completed_date,omitempty"`
	EstimatedDuration int                    `gorm:"default:0" json:"estimated_duration"`
	ActualDuration    int                    `gorm:"default:0" json:"actual_duration"`
	Category          string                 `json:"category"`
	Tags              []string               `gorm:"type:text;serializer:json" json:"tags"`
	Recurring         bool                   `gorm:"default:false" json:"recurring"`
	RecurrencePattern string                 `json:"recurrence_pattern"`
}

func (Task) TableName() string {
	return "tasks"
}
