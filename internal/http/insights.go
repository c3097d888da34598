package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"productivity-tracker.com/productivity-tracker/internal/report"
)

func (h *Handler) Insights(c echo.Context) error {
	days, err := queryDays(c, defaultStatsDays)
	if err != nil {
		return h.fail(c, err, "")
	}

	insights, err := h.insights.ProductivityInsights(c.Request().Context(), days)
	if err != nil {
		return h.fail(c, err, "failed to compute insights")
	}

	return c.JSON(http.StatusOK, insights)
}

func (h *Handler) Recommendations(c echo.Context) error {
	recs, err := h.insights.Recommendations(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to compute recommendations")
	}

	return c.JSON(http.StatusOK, echo.Map{"recommendations": recs})
}

// ExportReport streams the productivity workbook.
func (h *Handler) ExportReport(c echo.Context) error {
	days, err := queryDays(c, defaultHistoryDays)
	if err != nil {
		return h.fail(c, err, "")
	}

	data, err := report.Collect(c.Request().Context(), report.Sources{
		Tasks:    h.tasks,
		Habits:   h.habits,
		Timer:    h.timer,
		Insights: h.insights,
		Clock:    h.clock,
	}, days)
	if err != nil {
		return h.fail(c, err, "failed to collect report data")
	}

	now := time.Now
	if h.clock != nil {
		now = h.clock
	}

	c.Response().Header().Set(echo.HeaderContentType, report.ContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, report.FileName(now())))
	c.Response().WriteHeader(http.StatusOK)

	return report.Write(c.Response().Writer, data)
}
