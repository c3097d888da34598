package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "productivity-tracker.com/productivity-tracker/internal/data_models"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
)

func ValidateCreateHabitRequest(r *dto.CreateHabitRequest) error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.ErrHabitNameRequired
	}
	return nil
}

func ValidateUpdateHabitRequest(r *dto.UpdateHabitRequest) error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.ErrHabitNameRequired
	}
	if r.StreakCount != nil && *r.StreakCount < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "streak_count must not be negative")
	}
	return nil
}
