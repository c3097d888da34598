package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
	model "productivity-tracker.com/productivity-tracker/internal/models"
	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
)

type TaskService struct {
	repo   *repository.TaskRepository
	clock  Clock
	logger zerolog.Logger
}

func NewTaskService(repo *repository.TaskRepository, clock Clock, logger zerolog.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		clock:  orNow(clock),
		logger: logger.With().Str("component", "tasks").Logger(),
	}
}

func (s *TaskService) CreateTask(ctx context.Context, task *model.Task) (uint, error) {
	if strings.TrimSpace(task.Title) == "" {
		return 0, apperrors.ErrTitleRequired
	}
	if task.CreatedDate.IsZero() {
		task.CreatedDate = s.clock()
	}
	if task.Status == "" {
		task.Status = constants.StatusPending
	}
	if task.Priority == "" {
		task.Priority = constants.PriorityMedium
	}
	if !task.Status.Valid() {
		return 0, apperrors.ErrInvalidStatus
	}
	if !task.Priority.Valid() {
		return 0, apperrors.ErrInvalidPriority
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return 0, err
	}

	s.logger.Debug().Uint("task_id", task.ID).Str("title", task.Title).Msg("task created")
	return task.ID, nil
}

// GetTask returns nil when the task does not exist.
func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	return s.repo.List(ctx, filter)
}

// UpdateTask applies allow-listed fields. It reports false when nothing was
// patched, including when the task does not exist.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}
	if title, ok := fields["title"]; ok {
		if str, _ := title.(string); strings.TrimSpace(str) == "" {
			return false, apperrors.ErrTitleRequired
		}
	}
	if status, ok := fields["status"]; ok && !constants.TaskStatus(enumValue(status)).Valid() {
		return false, apperrors.ErrInvalidStatus
	}
	if priority, ok := fields["priority"]; ok && !constants.TaskPriority(enumValue(priority)).Valid() {
		return false, apperrors.ErrInvalidPriority
	}

	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// enumValue accepts plain strings and the typed status/priority constants.
func enumValue(v any) string {
	switch e := v.(type) {
	case string:
		return e
	case constants.TaskStatus:
		return string(e)
	case constants.TaskPriority:
		return string(e)
	}
	return ""
}

// DeleteTask succeeds for unknown ids too.
func (s *TaskService) DeleteTask(ctx context.Context, id uint) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	s.logger.Debug().Uint("task_id", id).Msg("task deleted")
	return true, nil
}

func (s *TaskService) MarkComplete(ctx context.Context, id uint, actualDuration int) (bool, error) {
	return s.UpdateTask(ctx, id, map[string]any{
		"status":          string(constants.StatusCompleted),
		"completed_date":  s.clock(),
		"actual_duration": actualDuration,
	})
}

// StartTask moves any task to in_progress, including completed or cancelled ones.
func (s *TaskService) StartTask(ctx context.Context, id uint) (bool, error) {
	return s.UpdateTask(ctx, id, map[string]any{"status": string(constants.StatusInProgress)})
}

func (s *TaskService) OverdueTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.ListOverdue(ctx, s.clock())
}

func (s *TaskService) Statistics(ctx context.Context) (*model.TaskStatistics, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.repo.AverageActualDuration(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.CountOverdue(ctx, s.clock())
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	rate := 0.0
	if total > 0 {
		rate = float64(byStatus[constants.StatusCompleted]) / float64(total) * 100
	}

	return &model.TaskStatistics{
		TotalTasks:           total,
		StatusDistribution:   byStatus,
		PriorityDistribution: byPriority,
		CompletionRate:       roundTo(rate, 2),
		AverageTimeSpent:     roundTo(avg, 2),
		OverdueTasks:         overdue,
	}, nil
}
