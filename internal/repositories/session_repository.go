package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	model "productivity-tracker.com/productivity-tracker/internal/models"
)

type SessionRepository struct {
	gw *Gateway
}

func NewSessionRepository(gw *Gateway) *SessionRepository {
	return &SessionRepository{gw: gw}
}

// Open inserts an unfinished session and returns its id.
func (r *SessionRepository) Open(ctx context.Context, taskID *uint, kind constants.SessionType, start time.Time) (uint, error) {
	var task any
	if taskID != nil {
		task = *taskID
	}

	id, err := r.gw.Exec(ctx,
		"INSERT INTO time_sessions (task_id, start_time, duration, session_type) VALUES (?, ?, 0, ?)",
		task, start.UTC(), string(kind),
	)
	if err != nil {
		return 0, fmt.Errorf("open %s session: %w", kind, err)
	}
	return uint(id), nil
}

func (r *SessionRepository) Finalize(ctx context.Context, id uint, end time.Time, durationSec int) error {
	res := r.gw.DB(ctx).Table(model.TimeSession{}.TableName()).
		Where("id = ?", id).
		Updates(map[string]any{
			"end_time": end.UTC(),
			"duration": durationSec,
		})
	if res.Error != nil {
		return fmt.Errorf("finalize session %d: %w", id, res.Error)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (*model.TimeSession, error) {
	var session model.TimeSession
	err := r.gw.DB(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session %d: %w", id, err)
	}
	return &session, nil
}

func (r *SessionRepository) CountOpen(ctx context.Context) (int, error) {
	var count int64
	err := r.gw.DB(ctx).Model(&model.TimeSession{}).Where("end_time IS NULL").Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count open sessions: %w", err)
	}
	return int(count), nil
}

// ListFinishedSince returns sessions started at or after since with a recorded duration.
func (r *SessionRepository) ListFinishedSince(ctx context.Context, since time.Time) ([]model.TimeSession, error) {
	var sessions []model.TimeSession
	err := r.gw.DB(ctx).
		Where("start_time >= ? AND duration > 0", since.UTC()).
		Order("start_time desc").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
