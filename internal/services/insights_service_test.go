package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "productivity-tracker.com/productivity-tracker/internal/models"
)

type stubTaskStats struct {
	stats *model.TaskStatistics
	err   error
}

func (s stubTaskStats) Statistics(context.Context) (*model.TaskStatistics, error) {
	return s.stats, s.err
}

type stubTimeStats struct {
	stats *model.TimeStatistics
	days  *int
}

func (s stubTimeStats) Statistics(_ context.Context, days int) (*model.TimeStatistics, error) {
	if s.days != nil {
		*s.days = days
	}
	return s.stats, nil
}

type stubHabitStats struct {
	stats *model.HabitStatistics
}

func (s stubHabitStats) Statistics(context.Context) (*model.HabitStatistics, error) {
	return s.stats, nil
}

func TestProductivityScore(t *testing.T) {
	tests := []struct {
		name    string
		task    float64
		habit   float64
		minutes int
		overdue int
		want    int
	}{
		{"mixed", 80, 100, 120, 1, 57},
		{"nothing", 0, 0, 0, 0, 0},
		{"overdue penalty capped", 50, 0, 0, 7, 10},
		{"negative clamps to zero", 0, 0, 0, 3, 0},
		{"hours capped", 100, 100, 60 * 500, 0, 90},
		{"above hundred clamps", 100, 200, 6000, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductivityScore(tt.task, tt.habit, tt.minutes, tt.overdue))
		})
	}
}

func TestRecommend(t *testing.T) {
	t.Run("all rules fire", func(t *testing.T) {
		got := Recommend(&model.Insights{
			TaskCompletionRate:  10,
			OverdueTasks:        2,
			TotalTimeTracked:    30,
			HabitCompletionRate: 20,
			ProductivityScore:   15,
		})
		assert.Equal(t, []string{
			RecommendCompleteTasks,
			RecommendOverdue,
			RecommendTrackTime,
			RecommendHabits,
			RemarkMotivate,
		}, got)
	})

	t.Run("only closing remark", func(t *testing.T) {
		got := Recommend(&model.Insights{
			TaskCompletionRate:  90,
			TotalTimeTracked:    600,
			HabitCompletionRate: 90,
			ProductivityScore:   81,
		})
		assert.Equal(t, []string{RemarkExcellent}, got)
	})

	t.Run("closing remark boundaries", func(t *testing.T) {
		base := model.Insights{TaskCompletionRate: 90, TotalTimeTracked: 600, HabitCompletionRate: 90}

		base.ProductivityScore = 80
		assert.Equal(t, []string{RemarkGood}, Recommend(&base))

		base.ProductivityScore = 61
		assert.Equal(t, []string{RemarkGood}, Recommend(&base))

		base.ProductivityScore = 60
		assert.Equal(t, []string{RemarkMotivate}, Recommend(&base))
	})

	t.Run("thresholds are strict", func(t *testing.T) {
		got := Recommend(&model.Insights{
			TaskCompletionRate:  50,
			TotalTimeTracked:    300,
			HabitCompletionRate: 60,
			ProductivityScore:   70,
		})
		assert.Equal(t, []string{RemarkGood}, got)
	})
}

func TestInsightsService_ProductivityInsights(t *testing.T) {
	var days int
	svc := NewInsightsService(
		stubTaskStats{stats: &model.TaskStatistics{CompletionRate: 80, OverdueTasks: 1}},
		stubTimeStats{stats: &model.TimeStatistics{TotalTimeMinutes: 120}, days: &days},
		stubHabitStats{stats: &model.HabitStatistics{CompletionRate: 100, AverageStreak: 2.5, TotalHabits: 4}},
	)

	insights, err := svc.ProductivityInsights(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 30, days)
	assert.Equal(t, &model.Insights{
		TaskCompletionRate:  80,
		TotalTimeTracked:    120,
		HabitCompletionRate: 100,
		AverageStreak:       2.5,
		OverdueTasks:        1,
		TotalHabits:         4,
		ProductivityScore:   57,
	}, insights)

	recs, err := svc.Recommendations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, recommendationWindowDays, days)
	assert.Equal(t, []string{RecommendOverdue, RecommendTrackTime, RemarkMotivate}, recs)
}

func TestInsightsService_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewInsightsService(
		stubTaskStats{err: boom},
		stubTimeStats{stats: &model.TimeStatistics{}},
		stubHabitStats{stats: &model.HabitStatistics{}},
	)

	_, err := svc.ProductivityInsights(context.Background(), 7)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Recommendations(context.Background())
	assert.ErrorIs(t, err, boom)
}
