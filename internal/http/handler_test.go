package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	httpapi "productivity-tracker.com/productivity-tracker/internal/http"
	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
	"productivity-tracker.com/productivity-tracker/internal/repositories/sqlitetest"
	"productivity-tracker.com/productivity-tracker/internal/report"
	"productivity-tracker.com/productivity-tracker/internal/services"
)

var apiNow = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

type apiFixture struct {
	e *echo.Echo
}

func newAPI(t *testing.T) *apiFixture {
	gw := sqlitetest.Open(t)
	clock := func() time.Time { return apiNow }
	logger := zerolog.Nop()

	tasks := services.NewTaskService(repository.NewTaskRepository(gw), clock, logger)
	habits := services.NewHabitService(repository.NewHabitRepository(gw), clock, logger)
	timer := services.NewTimerService(repository.NewSessionRepository(gw), nil, services.TimerOptions{
		TickInterval: time.Hour,
		Clock:        clock,
		Logger:       logger,
	})
	t.Cleanup(func() { _ = timer.Shutdown(context.Background()) })
	insights := services.NewInsightsService(tasks, timer, habits)

	e := echo.New()
	httpapi.Register(e, httpapi.NewHandler(tasks, habits, timer, insights, clock, logger), 0)

	return &apiFixture{e: e}
}

func (f *apiFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestTaskEndpoints(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/api/tasks", `{"title":"Write report","priority":"high","tags":["work"],"category":"job"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "high", created["priority"])

	rec = api.do(t, http.MethodGet, "/api/tasks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Write report", decode(t, rec)["title"])
	assert.Equal(t, []any{"work"}, decode(t, rec)["tags"])

	rec = api.do(t, http.MethodPatch, "/api/tasks/1", `{"description":"quarterly"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["updated"])

	rec = api.do(t, http.MethodPatch, "/api/tasks/42", `{"description":"nobody"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["updated"])

	rec = api.do(t, http.MethodPost, "/api/tasks/1/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["started"])

	rec = api.do(t, http.MethodPost, "/api/tasks/1/complete", `{"actual_duration":45}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["completed"])

	rec = api.do(t, http.MethodGet, "/api/tasks?status=completed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = api.do(t, http.MethodGet, "/api/tasks/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.Equal(t, float64(100), stats["completion_rate"])
	assert.Equal(t, float64(45), stats["average_time_spent"])

	rec = api.do(t, http.MethodDelete, "/api/tasks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["deleted"])

	rec = api.do(t, http.MethodGet, "/api/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskEndpoints_Errors(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"missing title", http.MethodPost, "/api/tasks", `{"description":"no title"}`, http.StatusBadRequest},
		{"bad priority", http.MethodPost, "/api/tasks", `{"title":"x","priority":"someday"}`, http.StatusBadRequest},
		{"broken json", http.MethodPost, "/api/tasks", `{"title":`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/tasks/abc", "", http.StatusBadRequest},
		{"zero id", http.MethodGet, "/api/tasks/0", "", http.StatusBadRequest},
		{"blank title update", http.MethodPatch, "/api/tasks/1", `{"title":" "}`, http.StatusBadRequest},
		{"unknown task", http.MethodGet, "/api/tasks/99", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestOverdueEndpoint(t *testing.T) {
	api := newAPI(t)

	yesterday := apiNow.Add(-24 * time.Hour).Format(time.RFC3339)
	tomorrow := apiNow.Add(24 * time.Hour).Format(time.RFC3339)

	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/tasks", `{"title":"late","due_date":"`+yesterday+`"}`).Code)
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/tasks", `{"title":"later","due_date":"`+tomorrow+`"}`).Code)

	rec := api.do(t, http.MethodGet, "/api/tasks/overdue", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(1), body["count"])
	tasks := body["tasks"].([]any)
	assert.Equal(t, "late", tasks[0].(map[string]any)["title"])
}

func TestHabitEndpoints(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodPost, "/api/habits", `{"name":"Read"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "daily", decode(t, rec)["frequency"])

	rec = api.do(t, http.MethodPost, "/api/habits", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/habits/1/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["completed"])

	rec = api.do(t, http.MethodPost, "/api/habits/1/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["completed"])

	rec = api.do(t, http.MethodPost, "/api/habits/7/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["completed"])

	rec = api.do(t, http.MethodGet, "/api/habits/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["streak_count"])

	rec = api.do(t, http.MethodGet, "/api/habits/1/history?days=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode(t, rec)["history"].([]any)
	require.Len(t, history, 1)
	assert.Equal(t, "2026-04-10", history[0].(map[string]any)["date"])

	rec = api.do(t, http.MethodGet, "/api/habits/1/history?days=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/habits/1", `{"streak_count":9}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/habits/1/recompute", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["streak_count"])

	rec = api.do(t, http.MethodGet, "/api/habits/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.Equal(t, float64(1), stats["total_habits"])
	assert.Equal(t, float64(100), stats["completion_rate"])

	rec = api.do(t, http.MethodGet, "/api/habits/streaks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["streaks"], 1)

	rec = api.do(t, http.MethodDelete, "/api/habits/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/habits/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTimerEndpoints(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodGet, "/api/timer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "idle", decode(t, rec)["phase"])

	rec = api.do(t, http.MethodPut, "/api/timer/config", `{"work_minutes":0,"break_minutes":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/timer/config", `{"work_minutes":50,"break_minutes":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3000), decode(t, rec)["work_seconds"])

	rec = api.do(t, http.MethodPost, "/api/timer/work", `{"task_id":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	state := decode(t, rec)
	assert.Equal(t, "running", state["phase"])
	assert.Equal(t, "pomodoro_work", state["kind"])
	assert.Equal(t, float64(3), state["task_id"])
	assert.Equal(t, float64(3000), state["remaining_seconds"])

	rec = api.do(t, http.MethodPost, "/api/timer/break", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/timer/stop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "idle", decode(t, rec)["phase"])

	rec = api.do(t, http.MethodPost, "/api/timer/stop", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/timer/break", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(600), decode(t, rec)["remaining_seconds"])

	rec = api.do(t, http.MethodGet, "/api/timer/statistics?days=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.Equal(t, float64(0), stats["total_time_minutes"])
	assert.Contains(t, stats, "time_by_type_seconds")

	rec = api.do(t, http.MethodGet, "/api/timer/statistics?days=-2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsEndpoints(t *testing.T) {
	api := newAPI(t)

	rec := api.do(t, http.MethodGet, "/api/insights", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(0), body["productivity_score"])
	assert.Equal(t, float64(0), body["total_habits"])

	rec = api.do(t, http.MethodGet, "/api/insights/recommendations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{
		services.RecommendCompleteTasks,
		services.RecommendTrackTime,
		services.RecommendHabits,
		services.RemarkMotivate,
	}, decode(t, rec)["recommendations"])
}

func TestExportEndpoint(t *testing.T) {
	api := newAPI(t)
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/tasks", `{"title":"Ship it"}`).Code)

	rec := api.do(t, http.MethodGet, "/api/reports/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "productivity_20260410_")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(report.SheetTasks, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ship it", title)
}
