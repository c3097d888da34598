package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	dto "productivity-tracker.com/productivity-tracker/internal/data_models"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	if r.Status != "" {
		if err := validateStatus(r.Status); err != nil {
			return err
		}
	}
	if r.Priority != "" {
		if err := validatePriority(r.Priority); err != nil {
			return err
		}
	}
	if r.EstimatedDuration < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "estimated_duration must not be negative")
	}
	return nil
}

func validateStatus(status string) error {
	if !constants.TaskStatus(status).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status: "+status)
	}
	return nil
}

func validatePriority(priority string) error {
	if !constants.TaskPriority(priority).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown priority: "+priority)
	}
	return nil
}
