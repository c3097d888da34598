package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	model "productivity-tracker.com/productivity-tracker/internal/models"
)

type HabitRepository struct {
	gw *Gateway
}

var HabitUpdatableFields = map[string]struct{}{
	"name":           {},
	"description":    {},
	"frequency":      {},
	"streak_count":   {},
	"last_completed": {},
}

func NewHabitRepository(gw *Gateway) *HabitRepository {
	return &HabitRepository{gw: gw}
}

func (r *HabitRepository) CreateHabit(ctx context.Context, habit *model.Habit) error {
	habit.CreatedDate = utc(habit.CreatedDate)
	habit.LastCompleted = utcPtr(habit.LastCompleted)

	if err := r.gw.DB(ctx).Create(habit).Error; err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// FindByID returns nil without error when the habit does not exist.
func (r *HabitRepository) FindByID(ctx context.Context, id uint) (*model.Habit, error) {
	var habit model.Habit
	err := r.gw.DB(ctx).First(&habit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find habit %d: %w", id, err)
	}
	return &habit, nil
}

func (r *HabitRepository) List(ctx context.Context) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.gw.DB(ctx).Order("created_date desc").Order("id desc").Find(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

func (r *HabitRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	columns := make(map[string]any, len(fields))
	for field, value := range fields {
		if _, ok := HabitUpdatableFields[field]; !ok {
			continue
		}
		if field == "last_completed" {
			value = normalizeTime(value)
		}
		columns[field] = value
	}
	if len(columns) == 0 {
		return 0, nil
	}

	res := r.gw.DB(ctx).Table(model.Habit{}.TableName()).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return 0, fmt.Errorf("update habit %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the completion ledger and the habit in one transaction.
func (r *HabitRepository) Delete(ctx context.Context, id uint) error {
	err := r.gw.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&model.HabitCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Habit{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete habit %d: %w", id, err)
	}
	return nil
}

func (r *HabitRepository) AddCompletion(ctx context.Context, habitID uint, at time.Time) error {
	completion := &model.HabitCompletion{HabitID: habitID, CompletedDate: at.UTC()}
	if err := r.gw.DB(ctx).Create(completion).Error; err != nil {
		return fmt.Errorf("add completion for habit %d: %w", habitID, err)
	}
	return nil
}

// CompleteForDay records a completion at `at` unless one already exists in
// [dayStart, dayEnd). The check, the ledger insert and the streak update share
// one transaction. It reports false for unknown habits and repeat completions.
func (r *HabitRepository) CompleteForDay(
	ctx context.Context,
	habitID uint,
	at, dayStart, dayEnd time.Time,
	nextStreak func(habit *model.Habit) int,
) (bool, int, error) {
	completed := false
	streak := 0

	err := r.gw.Transaction(ctx, func(tx *gorm.DB) error {
		var habit model.Habit
		err := tx.First(&habit, "id = ?", habitID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var count int64
		err = tx.Model(&model.HabitCompletion{}).
			Where("habit_id = ? AND completed_date >= ? AND completed_date < ?", habitID, dayStart.UTC(), dayEnd.UTC()).
			Count(&count).Error
		if err != nil || count > 0 {
			return err
		}

		if err := tx.Create(&model.HabitCompletion{HabitID: habitID, CompletedDate: at.UTC()}).Error; err != nil {
			return err
		}

		streak = nextStreak(&habit)
		err = tx.Table(model.Habit{}.TableName()).Where("id = ?", habitID).Updates(map[string]any{
			"streak_count":   streak,
			"last_completed": at.UTC(),
		}).Error
		if err != nil {
			return err
		}

		completed = true
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("complete habit %d: %w", habitID, err)
	}
	return completed, streak, nil
}

// CountCompletionsBetween counts ledger rows in [from, to).
func (r *HabitRepository) CountCompletionsBetween(ctx context.Context, habitID uint, from, to time.Time) (int, error) {
	var count int64
	err := r.gw.DB(ctx).Model(&model.HabitCompletion{}).
		Where("habit_id = ? AND completed_date >= ? AND completed_date < ?", habitID, from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count completions for habit %d: %w", habitID, err)
	}
	return int(count), nil
}

// CountHabitsCompletedBetween counts distinct habits with a completion in [from, to).
func (r *HabitRepository) CountHabitsCompletedBetween(ctx context.Context, from, to time.Time) (int, error) {
	rows, err := r.gw.Query(ctx,
		"SELECT COUNT(DISTINCT habit_id) AS count FROM habit_completions WHERE completed_date >= ? AND completed_date < ?",
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return asInt(rows[0].Get("count")), nil
}

// ListCompletions returns ledger rows at or after since in ascending order.
// A zero since returns the whole ledger.
func (r *HabitRepository) ListCompletions(ctx context.Context, habitID uint, since time.Time) ([]model.HabitCompletion, error) {
	query := r.gw.DB(ctx).Where("habit_id = ?", habitID)
	if !since.IsZero() {
		query = query.Where("completed_date >= ?", since.UTC())
	}

	var completions []model.HabitCompletion
	if err := query.Order("completed_date asc").Find(&completions).Error; err != nil {
		return nil, fmt.Errorf("list completions for habit %d: %w", habitID, err)
	}
	return completions, nil
}
