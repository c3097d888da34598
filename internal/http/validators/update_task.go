package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "productivity-tracker.com/productivity-tracker/internal/data_models"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
)

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	if r.Status != nil {
		if err := validateStatus(*r.Status); err != nil {
			return err
		}
	}
	if r.Priority != nil {
		if err := validatePriority(*r.Priority); err != nil {
			return err
		}
	}
	if r.ActualDuration != nil && *r.ActualDuration < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "actual_duration must not be negative")
	}
	return nil
}
