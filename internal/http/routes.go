package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "productivity-tracker.com/productivity-tracker/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	api := e.Group("/api", middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/overdue", h.OverdueTasks)
	api.GET("/tasks/statistics", h.TaskStatistics)
	api.GET("/tasks/:id", h.GetTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.POST("/tasks/:id/start", h.StartTask)
	api.POST("/tasks/:id/complete", h.CompleteTask)

	api.POST("/habits", h.CreateHabit)
	api.GET("/habits", h.ListHabits)
	api.GET("/habits/statistics", h.HabitStatistics)
	api.GET("/habits/streaks", h.HabitStreaks)
	api.GET("/habits/:id", h.GetHabit)
	api.PATCH("/habits/:id", h.UpdateHabit)
	api.DELETE("/habits/:id", h.DeleteHabit)
	api.POST("/habits/:id/complete", h.CompleteHabit)
	api.POST("/habits/:id/recompute", h.RecomputeStreak)
	api.GET("/habits/:id/history", h.HabitHistory)

	api.GET("/timer", h.GetTimer)
	api.POST("/timer/work", h.StartWork)
	api.POST("/timer/break", h.StartBreak)
	api.POST("/timer/stop", h.StopTimer)
	api.PUT("/timer/config", h.ConfigureTimer)
	api.GET("/timer/statistics", h.TimerStatistics)

	api.GET("/insights", h.Insights)
	api.GET("/insights/recommendations", h.Recommendations)
	api.GET("/reports/export", h.ExportReport)
}
