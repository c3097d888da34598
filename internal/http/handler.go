package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
	"productivity-tracker.com/productivity-tracker/internal/services"
)

type Handler struct {
	tasks    *services.TaskService
	habits   *services.HabitService
	timer    *services.TimerService
	insights *services.InsightsService
	clock    services.Clock
	logger   zerolog.Logger
}

func NewHandler(
	tasks *services.TaskService,
	habits *services.HabitService,
	timer *services.TimerService,
	insights *services.InsightsService,
	clock services.Clock,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		tasks:    tasks,
		habits:   habits,
		timer:    timer,
		insights: insights,
		clock:    clock,
		logger:   logger.With().Str("component", "http").Logger(),
	}
}

// fail maps service errors to HTTP errors. Storage failures are logged and
// reported with msg only.
func (h *Handler) fail(c echo.Context, err error, msg string) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	code := apperrors.StatusCode(err)
	if code == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("route", c.Path()).Msg(msg)
		return echo.NewHTTPError(code, msg)
	}
	return echo.NewHTTPError(code, err.Error())
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	return nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

func queryDays(c echo.Context, fallback int) (int, error) {
	raw := c.QueryParam("days")
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, apperrors.ErrInvalidDays
	}
	return days, nil
}
