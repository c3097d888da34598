package model

import "time"

type Habit struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Description   string     `json:"description"`
	Frequency     string     `gorm:"default:daily" json:"frequency"`
	StreakCount   int        `gorm:"default:0" json:"streak_count"`
	CreatedDate   time.Time  `gorm:"not null" json:"created_date"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
}

func (Habit) TableName() string {
	return "habits"
}

// HabitCompletion is one ledger row; at most one per habit per calendar day.
type HabitCompletion struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	HabitID       uint      `gorm:"not null;index" json:"habit_id"`
	CompletedDate time.Time `gorm:"not null;index" json:"completed_date"`
}

func (HabitCompletion) TableName() string {
	return "habit_completions"
}
