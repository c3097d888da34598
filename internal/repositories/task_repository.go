package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	model "productivity-tracker.com/productivity-tracker/internal/models"
)

type TaskRepository struct {
	gw *Gateway
}

type TaskFilter struct {
	Status   constants.TaskStatus
	Category string
}

// TaskUpdatableFields is the patch allow-list; other keys are ignored.
var TaskUpdatableFields = map[string]struct{}{
	"title":              {},
	"description":        {},
	"status":             {},
	"priority":           {},
	"due_date":           {},
	"estimated_duration": {},
	"actual_duration":    {},
	"category":           {},
	"tags":               {},
	"recurring":          {},
	"recurrence_pattern": {},
	"completed_date":     {},
}

func NewTaskRepository(gw *Gateway) *TaskRepository {
	return &TaskRepository{gw: gw}
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) error {
	task.CreatedDate = utc(task.CreatedDate)
	task.DueDate = utcPtr(task.DueDate)
	task.CompletedDate = utcPtr(task.CompletedDate)
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if err := r.gw.DB(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindByID returns nil without error when the task does not exist.
func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.gw.DB(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.gw.DB(ctx).Model(&model.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var tasks []model.Task
	if err := query.Order("created_date desc").Order("id desc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update patches the allow-listed columns and reports how many rows changed.
func (r *TaskRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	columns, err := taskColumns(fields)
	if err != nil {
		return 0, err
	}
	if len(columns) == 0 {
		return 0, nil
	}

	res := r.gw.DB(ctx).Table(model.Task{}.TableName()).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return 0, fmt.Errorf("update task %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.gw.DB(ctx).Delete(&model.Task{}, id).Error; err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.overdueQuery(ctx, now).Order("due_date asc").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	var count int64
	if err := r.overdueQuery(ctx, now).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return int(count), nil
}

func (r *TaskRepository) overdueQuery(ctx context.Context, now time.Time) *gorm.DB {
	return r.gw.DB(ctx).Model(&model.Task{}).
		Where("due_date IS NOT NULL AND due_date < ?", now.UTC()).
		Where("status NOT IN ?", []string{string(constants.StatusCompleted), string(constants.StatusCancelled)})
}

func (r *TaskRepository) CountByStatus(ctx context.Context) (map[constants.TaskStatus]int, error) {
	rows, err := r.gw.Query(ctx, "SELECT status, COUNT(*) AS count FROM tasks GROUP BY status")
	if err != nil {
		return nil, err
	}

	counts := make(map[constants.TaskStatus]int, len(rows))
	for _, row := range rows {
		counts[constants.TaskStatus(asString(row.Get("status")))] = asInt(row.Get("count"))
	}
	return counts, nil
}

func (r *TaskRepository) CountByPriority(ctx context.Context) (map[constants.TaskPriority]int, error) {
	rows, err := r.gw.Query(ctx, "SELECT priority, COUNT(*) AS count FROM tasks GROUP BY priority")
	if err != nil {
		return nil, err
	}

	counts := make(map[constants.TaskPriority]int, len(rows))
	for _, row := range rows {
		counts[constants.TaskPriority(asString(row.Get("priority")))] = asInt(row.Get("count"))
	}
	return counts, nil
}

// AverageActualDuration averages completed tasks that recorded a non-zero duration.
func (r *TaskRepository) AverageActualDuration(ctx context.Context) (float64, error) {
	rows, err := r.gw.Query(ctx,
		"SELECT AVG(actual_duration) AS avg_time FROM tasks WHERE status = ? AND actual_duration > 0",
		string(constants.StatusCompleted),
	)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return asFloat(rows[0].Get("avg_time")), nil
}

func taskColumns(fields map[string]any) (map[string]any, error) {
	columns := make(map[string]any, len(fields))
	for field, value := range fields {
		if _, ok := TaskUpdatableFields[field]; !ok {
			continue
		}

		switch field {
		case "tags":
			encoded, err := encodeTags(value)
			if err != nil {
				return nil, err
			}
			value = encoded
		case "due_date", "completed_date":
			value = normalizeTime(value)
		case "status", "priority":
			value = fmt.Sprint(value)
		}
		columns[field] = value
	}
	return columns, nil
}

// encodeTags stores tags as a JSON array. A bare string becomes a one-element array.
func encodeTags(value any) (string, error) {
	switch v := value.(type) {
	case string:
		value = []string{v}
	case nil:
		return "[]", nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func normalizeTime(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.UTC()
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC()
	}
	return value
}
