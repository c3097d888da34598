package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
	model "productivity-tracker.com/productivity-tracker/internal/models"
	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
)

type HabitService struct {
	repo   *repository.HabitRepository
	clock  Clock
	logger zerolog.Logger
}

func NewHabitService(repo *repository.HabitRepository, clock Clock, logger zerolog.Logger) *HabitService {
	return &HabitService{
		repo:   repo,
		clock:  orNow(clock),
		logger: logger.With().Str("component", "habits").Logger(),
	}
}

func (s *HabitService) CreateHabit(ctx context.Context, habit *model.Habit) (uint, error) {
	if strings.TrimSpace(habit.Name) == "" {
		return 0, apperrors.ErrHabitNameRequired
	}
	if habit.CreatedDate.IsZero() {
		habit.CreatedDate = s.clock()
	}
	if habit.Frequency == "" {
		habit.Frequency = constants.DefaultHabitFrequency
	}
	habit.StreakCount = 0
	habit.LastCompleted = nil

	if err := s.repo.CreateHabit(ctx, habit); err != nil {
		return 0, err
	}
	return habit.ID, nil
}

// GetHabit returns nil when the habit does not exist.
func (s *HabitService) GetHabit(ctx context.Context, id uint) (*model.Habit, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *HabitService) ListHabits(ctx context.Context) ([]model.Habit, error) {
	return s.repo.List(ctx)
}

func (s *HabitService) UpdateHabit(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	if name, ok := fields["name"]; ok {
		if str, _ := name.(string); strings.TrimSpace(str) == "" {
			return false, apperrors.ErrHabitNameRequired
		}
	}

	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *HabitService) DeleteHabit(ctx context.Context, id uint) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// MarkComplete records today's completion and advances the streak. It returns
// false without touching storage when the habit is unknown or already done today.
func (s *HabitService) MarkComplete(ctx context.Context, id uint) (bool, error) {
	now := s.clock()
	today := startOfDay(now)

	completed, streak, err := s.repo.CompleteForDay(ctx, id, now, today, today.AddDate(0, 0, 1),
		func(habit *model.Habit) int {
			if habit.LastCompleted == nil {
				return 1
			}
			last := startOfDay(habit.LastCompleted.In(now.Location()))
			if last.Equal(today.AddDate(0, 0, -1)) {
				return habit.StreakCount + 1
			}
			return 1
		},
	)
	if err != nil || !completed {
		return false, err
	}

	s.logger.Debug().Uint("habit_id", id).Int("streak", streak).Msg("habit completed")
	return true, nil
}

func (s *HabitService) Statistics(ctx context.Context) (*model.HabitStatistics, error) {
	habits, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return &model.HabitStatistics{}, nil
	}

	total, longest := 0, 0
	for _, h := range habits {
		total += h.StreakCount
		longest = max(longest, h.StreakCount)
	}

	today := startOfDay(s.clock())
	completedToday, err := s.repo.CountHabitsCompletedBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	n := float64(len(habits))
	return &model.HabitStatistics{
		TotalHabits:    len(habits),
		TotalStreaks:   total,
		AverageStreak:  roundTo(float64(total)/n, 1),
		CompletionRate: roundTo(float64(completedToday)/n*100, 1),
		LongestStreak:  longest,
		CompletedToday: completedToday,
	}, nil
}

// CompletionHistory groups the trailing window of completions by calendar date, ascending.
func (s *HabitService) CompletionHistory(ctx context.Context, id uint, days int) ([]model.DailyCompletions, error) {
	if days <= 0 {
		return nil, apperrors.ErrInvalidDays
	}

	now := s.clock()
	completions, err := s.repo.ListCompletions(ctx, id, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	history := []model.DailyCompletions{}
	for _, c := range completions {
		key := dateKey(c.CompletedDate.In(now.Location()))
		if n := len(history); n > 0 && history[n-1].Date == key {
			history[n-1].Completions++
			continue
		}
		history = append(history, model.DailyCompletions{Date: key, Completions: 1})
	}
	return history, nil
}

// RecomputeStreak rebuilds the stored streak from the completion ledger and
// persists it. Unknown habits yield 0.
func (s *HabitService) RecomputeStreak(ctx context.Context, id uint) (int, error) {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil || habit == nil {
		return 0, err
	}

	completions, err := s.repo.ListCompletions(ctx, id, time.Time{})
	if err != nil {
		return 0, err
	}

	loc := s.clock().Location()
	streak := 0
	var last *time.Time
	if n := len(completions); n > 0 {
		latest := completions[n-1].CompletedDate
		last = &latest

		expected := startOfDay(latest.In(loc))
		for i := n - 1; i >= 0; i-- {
			day := startOfDay(completions[i].CompletedDate.In(loc))
			if day.Equal(expected) {
				streak++
				expected = expected.AddDate(0, 0, -1)
				continue
			}
			if day.Before(expected) {
				break
			}
		}
	}

	fields := map[string]any{"streak_count": streak, "last_completed": last}
	if _, err := s.repo.Update(ctx, id, fields); err != nil {
		return 0, err
	}

	if streak != habit.StreakCount {
		s.logger.Info().Uint("habit_id", id).Int("stored", habit.StreakCount).Int("ledger", streak).Msg("streak repaired")
	}
	return streak, nil
}

func (s *HabitService) Streaks(ctx context.Context) ([]model.HabitStreak, error) {
	habits, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	streaks := make([]model.HabitStreak, 0, len(habits))
	for _, h := range habits {
		streaks = append(streaks, model.HabitStreak{ID: h.ID, Name: h.Name, StreakCount: h.StreakCount})
	}
	return streaks, nil
}
