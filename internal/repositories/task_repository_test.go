package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	model "productivity-tracker.com/productivity-tracker/internal/models"
	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
	"productivity-tracker.com/productivity-tracker/internal/repositories/sqlitetest"
)

func TestTaskRepository_TagsRoundTrip(t *testing.T) {
	repo := repository.NewTaskRepository(sqlitetest.Open(t))
	ctx := context.Background()

	task := &model.Task{
		Title:       "Prepare slides",
		Status:      constants.StatusPending,
		Priority:    constants.PriorityHigh,
		CreatedDate: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Tags:        []string{"urgent", "meeting"},
	}
	require.NoError(t, repo.CreateTask(ctx, task))

	got, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"urgent", "meeting"}, got.Tags)

	affected, err := repo.Update(ctx, task.ID, map[string]any{"tags": []string{"b", "a", "c"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err = repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, got.Tags)
}

func TestTaskRepository_UpdateTagsFromString(t *testing.T) {
	repo := repository.NewTaskRepository(sqlitetest.Open(t))
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := &model.Task{Title: "first", Status: constants.StatusPending, Priority: constants.PriorityLow, CreatedDate: created}
	second := &model.Task{Title: "second", Status: constants.StatusPending, Priority: constants.PriorityLow, CreatedDate: created, Tags: []string{"x"}}
	require.NoError(t, repo.CreateTask(ctx, first))
	require.NoError(t, repo.CreateTask(ctx, second))

	affected, err := repo.Update(ctx, first.ID, map[string]any{"tags": "meeting"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"meeting"}, got.Tags)

	tasks, err := repo.List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestTaskRepository_UpdateIgnoresUnknownFields(t *testing.T) {
	repo := repository.NewTaskRepository(sqlitetest.Open(t))
	ctx := context.Background()

	task := &model.Task{Title: "t", Status: constants.StatusPending, Priority: constants.PriorityLow, CreatedDate: time.Now()}
	require.NoError(t, repo.CreateTask(ctx, task))

	affected, err := repo.Update(ctx, task.ID, map[string]any{"id": 99, "created_date": time.Now()})
	require.NoError(t, err)
	assert.Zero(t, affected)

	got, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
}

func TestTaskRepository_FindMissing(t *testing.T) {
	repo := repository.NewTaskRepository(sqlitetest.Open(t))

	got, err := repo.FindByID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTaskRepository_Distributions(t *testing.T) {
	repo := repository.NewTaskRepository(sqlitetest.Open(t))
	ctx := context.Background()
	now := time.Now()

	seed := []model.Task{
		{Title: "a", Status: constants.StatusCompleted, Priority: constants.PriorityHigh, ActualDuration: 30},
		{Title: "b", Status: constants.StatusCompleted, Priority: constants.PriorityLow, ActualDuration: 0},
		{Title: "c", Status: constants.StatusCompleted, Priority: constants.PriorityHigh, ActualDuration: 45},
		{Title: "d", Status: constants.StatusPending, Priority: constants.PriorityUrgent, ActualDuration: 100},
	}
	for i := range seed {
		seed[i].CreatedDate = now
		require.NoError(t, repo.CreateTask(ctx, &seed[i]))
	}

	byStatus, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[constants.TaskStatus]int{constants.StatusCompleted: 3, constants.StatusPending: 1}, byStatus)

	byPriority, err := repo.CountByPriority(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, byPriority[constants.PriorityHigh])
	assert.Equal(t, 1, byPriority[constants.PriorityUrgent])

	avg, err := repo.AverageActualDuration(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 37.5, avg, 0.001)
}
