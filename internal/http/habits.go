package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "productivity-tracker.com/productivity-tracker/internal/data_models"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
	"productivity-tracker.com/productivity-tracker/internal/http/validators"
)

const defaultHistoryDays = 30

func (h *Handler) CreateHabit(c echo.Context) error {
	var req dto.CreateHabitRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	if err := validators.ValidateCreateHabitRequest(&req); err != nil {
		return h.fail(c, err, "")
	}

	habit := req.Habit()
	if _, err := h.habits.CreateHabit(c.Request().Context(), habit); err != nil {
		return h.fail(c, err, "failed to create habit")
	}

	return c.JSON(http.StatusCreated, habit)
}

func (h *Handler) GetHabit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	habit, err := h.habits.GetHabit(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to load habit")
	}
	if habit == nil {
		return h.fail(c, apperrors.ErrHabitNotFound, "")
	}

	return c.JSON(http.StatusOK, habit)
}

func (h *Handler) ListHabits(c echo.Context) error {
	habits, err := h.habits.ListHabits(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to list habits")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(habits),
		"habits": habits,
	})
}

func (h *Handler) UpdateHabit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	var req dto.UpdateHabitRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	if err := validators.ValidateUpdateHabitRequest(&req); err != nil {
		return h.fail(c, err, "")
	}

	updated, err := h.habits.UpdateHabit(c.Request().Context(), id, req.Fields())
	if err != nil {
		return h.fail(c, err, "failed to update habit")
	}

	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}

func (h *Handler) DeleteHabit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	deleted, err := h.habits.DeleteHabit(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to delete habit")
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

// CompleteHabit reports completed=false when the habit is unknown or already done today.
func (h *Handler) CompleteHabit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	completed, err := h.habits.MarkComplete(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to complete habit")
	}

	return c.JSON(http.StatusOK, echo.Map{"completed": completed})
}

func (h *Handler) RecomputeStreak(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	streak, err := h.habits.RecomputeStreak(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to recompute streak")
	}

	return c.JSON(http.StatusOK, echo.Map{"streak_count": streak})
}

func (h *Handler) HabitHistory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}
	days, err := queryDays(c, defaultHistoryDays)
	if err != nil {
		return h.fail(c, err, "")
	}

	history, err := h.habits.CompletionHistory(c.Request().Context(), id, days)
	if err != nil {
		return h.fail(c, err, "failed to load habit history")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"days":    days,
		"history": history,
	})
}

func (h *Handler) HabitStatistics(c echo.Context) error {
	stats, err := h.habits.Statistics(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to compute habit statistics")
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) HabitStreaks(c echo.Context) error {
	streaks, err := h.habits.Streaks(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to load habit streaks")
	}

	return c.JSON(http.StatusOK, echo.Map{"streaks": streaks})
}
