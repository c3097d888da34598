package model

import (
	"time"

	"productivity-tracker.com/productivity-tracker/internal/constants"
)

type TimeSession struct {
	ID          uint                  `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID      *uint                 `gorm:"index" json:"task_id,omitempty"`
	StartTime   time.Time             `gorm:"not null;index" json:"start_time"`
	EndTime     *time.Time            `json:"end_time,omitempty"`
	Duration    int                   `gorm:"default:0" json:"duration"`
	SessionType constants.SessionType `gorm:"type:varchar(20);default:pomodoro_work" json:"session_type"`
}

func (TimeSession) TableName() string {
	return "time_sessions"
}
