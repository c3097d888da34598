package model

import "productivity-tracker.com/productivity-tracker/internal/constants"

type TaskStatistics struct {
	TotalTasks           int                            `json:"total_tasks"`
	StatusDistribution   map[constants.TaskStatus]int   `json:"status_distribution"`
	PriorityDistribution map[constants.TaskPriority]int `json:"priority_distribution"`
	CompletionRate       float64                        `json:"completion_rate"`
	AverageTimeSpent     float64                        `json:"average_time_spent"`
	OverdueTasks         int                            `json:"overdue_tasks"`
}

type HabitStatistics struct {
	TotalHabits    int     `json:"total_habits"`
	TotalStreaks   int     `json:"total_streaks"`
	AverageStreak  float64 `json:"average_streak"`
	CompletionRate float64 `json:"completion_rate"`
	LongestStreak  int     `json:"longest_streak"`
	CompletedToday int     `json:"completed_today"`
}

type DailyCompletions struct {
	Date        string `json:"date"`
	Completions int    `json:"completions"`
}

type HabitStreak struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	StreakCount int    `json:"streak_count"`
}

// DailyTime is tracked seconds for one calendar date.
type DailyTime struct {
	Date      string `json:"date"`
	TotalTime int    `json:"total_time"`
}

type TimeStatistics struct {
	TotalTimeMinutes  int                           `json:"total_time_minutes"`
	TimeByTypeSeconds map[constants.SessionType]int `json:"time_by_type_seconds"`
	DailyBreakdown    []DailyTime                   `json:"daily_breakdown"`
}

type Insights struct {
	TaskCompletionRate  float64 `json:"task_completion_rate"`
	TotalTimeTracked    int     `json:"total_time_tracked"`
	HabitCompletionRate float64 `json:"habit_completion_rate"`
	AverageStreak       float64 `json:"average_streak"`
	OverdueTasks        int     `json:"overdue_tasks"`
	TotalHabits         int     `json:"total_habits"`
	ProductivityScore   int     `json:"productivity_score"`
}
