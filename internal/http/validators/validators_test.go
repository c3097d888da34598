package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	dto "productivity-tracker.com/productivity-tracker/internal/data_models"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
)

func strPtr(s string) *string { return &s }

func TestValidateCreateTaskRequest(t *testing.T) {
	assert.NoError(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "Write report"}))
	assert.NoError(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "x", Status: "in_progress", Priority: "urgent"}))

	assert.ErrorIs(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "   "}), apperrors.ErrTitleRequired)

	err := ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "x", Priority: "someday"})
	var httpErr *echo.HTTPError
	if assert.ErrorAs(t, err, &httpErr) {
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}

	err = ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "x", Status: "done"})
	assert.ErrorAs(t, err, &httpErr)
}

func TestValidateUpdateTaskRequest(t *testing.T) {
	assert.NoError(t, ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{}))
	assert.NoError(t, ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Status: strPtr("cancelled")}))
	assert.ErrorIs(t, ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Title: strPtr("")}), apperrors.ErrTitleRequired)
	assert.Error(t, ValidateUpdateTaskRequest(&dto.UpdateTaskRequest{Priority: strPtr("none")}))
}

func TestValidateHabitRequests(t *testing.T) {
	assert.NoError(t, ValidateCreateHabitRequest(&dto.CreateHabitRequest{Name: "Read"}))
	assert.ErrorIs(t, ValidateCreateHabitRequest(&dto.CreateHabitRequest{}), apperrors.ErrHabitNameRequired)
	assert.ErrorIs(t, ValidateUpdateHabitRequest(&dto.UpdateHabitRequest{Name: strPtr(" ")}), apperrors.ErrHabitNameRequired)
}

func TestValidateTimerConfigRequest(t *testing.T) {
	assert.NoError(t, ValidateTimerConfigRequest(&dto.TimerConfigRequest{WorkMinutes: 50, BreakMinutes: 10}))
	assert.ErrorIs(t, ValidateTimerConfigRequest(&dto.TimerConfigRequest{WorkMinutes: 50}), apperrors.ErrInvalidDurations)
}
