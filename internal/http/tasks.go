package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	dto "productivity-tracker.com/productivity-tracker/internal/data_models"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
	"productivity-tracker.com/productivity-tracker/internal/http/validators"
	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return h.fail(c, err, "")
	}

	task := req.Task()
	if _, err := h.tasks.CreateTask(c.Request().Context(), task); err != nil {
		return h.fail(c, err, "failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to load task")
	}
	if task == nil {
		return h.fail(c, apperrors.ErrTaskNotFound, "")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	filter := repository.TaskFilter{
		Status:   constants.TaskStatus(c.QueryParam("status")),
		Category: c.QueryParam("category"),
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	var req dto.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return h.fail(c, err, "")
	}

	updated, err := h.tasks.UpdateTask(c.Request().Context(), id, req.Fields())
	if err != nil {
		return h.fail(c, err, "failed to update task")
	}

	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	deleted, err := h.tasks.DeleteTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to delete task")
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

func (h *Handler) StartTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	started, err := h.tasks.StartTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to start task")
	}

	return c.JSON(http.StatusOK, echo.Map{"started": started})
}

func (h *Handler) CompleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err, "")
	}

	var req dto.CompleteTaskRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err, "")
	}

	completed, err := h.tasks.MarkComplete(c.Request().Context(), id, req.ActualDuration)
	if err != nil {
		return h.fail(c, err, "failed to complete task")
	}

	return c.JSON(http.StatusOK, echo.Map{"completed": completed})
}

func (h *Handler) OverdueTasks(c echo.Context) error {
	tasks, err := h.tasks.OverdueTasks(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to list overdue tasks")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) TaskStatistics(c echo.Context) error {
	stats, err := h.tasks.Statistics(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to compute task statistics")
	}

	return c.JSON(http.StatusOK, stats)
}
