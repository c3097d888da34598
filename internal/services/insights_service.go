package services

import (
	"context"
	"math"

	model "productivity-tracker.com/productivity-tracker/internal/models"
)

type TaskStatsProvider interface {
	Statistics(ctx context.Context) (*model.TaskStatistics, error)
}

type TimeStatsProvider interface {
	Statistics(ctx context.Context, days int) (*model.TimeStatistics, error)
}

type HabitStatsProvider interface {
	Statistics(ctx context.Context) (*model.HabitStatistics, error)
}

const recommendationWindowDays = 7

const (
	RecommendCompleteTasks = "Focus on completing pending tasks to improve your completion rate"
	RecommendOverdue       = "You have overdue tasks. Consider rescheduling or prioritizing them"
	RecommendTrackTime     = "Try tracking more time using the Pomodoro timer"
	RecommendHabits        = "Consistency is key! Try to maintain your habit streaks"
	RemarkExcellent        = "Great job! Your productivity is excellent. Keep it up!"
	RemarkGood             = "Good progress! Small improvements can boost your productivity further"
	RemarkMotivate         = "Let's work on building better habits and task management"
)

// InsightsService derives read-only analytics from the stores. It never mutates them.
type InsightsService struct {
	tasks  TaskStatsProvider
	time   TimeStatsProvider
	habits HabitStatsProvider
}

func NewInsightsService(tasks TaskStatsProvider, timer TimeStatsProvider, habits HabitStatsProvider) *InsightsService {
	return &InsightsService{
		tasks:  tasks,
		time:   timer,
		habits: habits,
	}
}

func (s *InsightsService) ProductivityInsights(ctx context.Context, days int) (*model.Insights, error) {
	taskStats, err := s.tasks.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	timeStats, err := s.time.Statistics(ctx, days)
	if err != nil {
		return nil, err
	}
	habitStats, err := s.habits.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	insights := &model.Insights{
		TaskCompletionRate:  taskStats.CompletionRate,
		TotalTimeTracked:    timeStats.TotalTimeMinutes,
		HabitCompletionRate: habitStats.CompletionRate,
		AverageStreak:       habitStats.AverageStreak,
		OverdueTasks:        taskStats.OverdueTasks,
		TotalHabits:         habitStats.TotalHabits,
	}
	insights.ProductivityScore = ProductivityScore(
		insights.TaskCompletionRate,
		insights.HabitCompletionRate,
		insights.TotalTimeTracked,
		insights.OverdueTasks,
	)
	return insights, nil
}

// ProductivityScore weighs task completion 40%, habit completion 30% and tracked
// hours 20%, minus up to 10 points for overdue tasks. The result is in [0, 100].
func ProductivityScore(taskRate, habitRate float64, trackedMinutes, overdue int) int {
	score := 0.4*min(taskRate, 100) +
		0.3*habitRate +
		0.2*min(float64(trackedMinutes)/60, 100) -
		min(float64(overdue*5), 10)

	return int(max(0, min(100, math.Round(score))))
}

func (s *InsightsService) Recommendations(ctx context.Context) ([]string, error) {
	insights, err := s.ProductivityInsights(ctx, recommendationWindowDays)
	if err != nil {
		return nil, err
	}
	return Recommend(insights), nil
}

// Recommend applies every threshold rule in order, then exactly one closing remark.
func Recommend(insights *model.Insights) []string {
	var out []string

	if insights.TaskCompletionRate < 50 {
		out = append(out, RecommendCompleteTasks)
	}
	if insights.OverdueTasks > 0 {
		out = append(out, RecommendOverdue)
	}
	if insights.TotalTimeTracked < 300 {
		out = append(out, RecommendTrackTime)
	}
	if insights.HabitCompletionRate < 60 {
		out = append(out, RecommendHabits)
	}

	switch {
	case insights.ProductivityScore > 80:
		out = append(out, RemarkExcellent)
	case insights.ProductivityScore > 60:
		out = append(out, RemarkGood)
	default:
		out = append(out, RemarkMotivate)
	}
	return out
}
