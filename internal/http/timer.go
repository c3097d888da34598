package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "productivity-tracker.com/productivity-tracker/internal/data_models"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
	"productivity-tracker.com/productivity-tracker/internal/http/validators"
)

const defaultStatsDays = 7

// StartWork starts a work session. Ticks and completion reach clients through
// the event publisher, not this response.
func (h *Handler) StartWork(c echo.Context) error {
	var req dto.StartWorkRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}

	started, err := h.timer.StartWork(c.Request().Context(), req.TaskID, nil, nil)
	if err != nil {
		return h.fail(c, err, "failed to start work session")
	}
	if !started {
		return h.fail(c, apperrors.ErrTimerRunning, "")
	}

	return c.JSON(http.StatusCreated, h.timer.State())
}

func (h *Handler) StartBreak(c echo.Context) error {
	started, err := h.timer.StartBreak(c.Request().Context(), nil, nil)
	if err != nil {
		return h.fail(c, err, "failed to start break")
	}
	if !started {
		return h.fail(c, apperrors.ErrTimerRunning, "")
	}

	return c.JSON(http.StatusCreated, h.timer.State())
}

func (h *Handler) StopTimer(c echo.Context) error {
	if err := h.timer.Stop(c.Request().Context()); err != nil {
		return h.fail(c, err, "failed to stop session")
	}

	return c.JSON(http.StatusOK, h.timer.State())
}

func (h *Handler) GetTimer(c echo.Context) error {
	return c.JSON(http.StatusOK, h.timer.State())
}

func (h *Handler) ConfigureTimer(c echo.Context) error {
	var req dto.TimerConfigRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	if err := validators.ValidateTimerConfigRequest(&req); err != nil {
		return h.fail(c, err, "")
	}

	if err := h.timer.Configure(req.WorkMinutes, req.BreakMinutes); err != nil {
		return h.fail(c, err, "failed to configure timer")
	}

	return c.JSON(http.StatusOK, h.timer.State())
}

func (h *Handler) TimerStatistics(c echo.Context) error {
	days, err := queryDays(c, defaultStatsDays)
	if err != nil {
		return h.fail(c, err, "")
	}

	stats, err := h.timer.Statistics(c.Request().Context(), days)
	if err != nil {
		return h.fail(c, err, "failed to compute time statistics")
	}

	return c.JSON(http.StatusOK, stats)
}
