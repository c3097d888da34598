package validators

import (
	dto "productivity-tracker.com/productivity-tracker/internal/data_models"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
)

func ValidateTimerConfigRequest(r *dto.TimerConfigRequest) error {
	if r.WorkMinutes <= 0 || r.BreakMinutes <= 0 {
		return apperrors.ErrInvalidDurations
	}
	return nil
}
