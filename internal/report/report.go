package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	model "productivity-tracker.com/productivity-tracker/internal/models"
	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
	"productivity-tracker.com/productivity-tracker/internal/services"
)

const (
	SheetSummary = "Summary"
	SheetTasks   = "Tasks"
	SheetHabits  = "Habits"
	SheetTime    = "Time"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const timeLayout = "2006-01-02 15:04"

// Data is everything one workbook renders.
type Data struct {
	GeneratedAt     time.Time
	Days            int
	Tasks           []model.Task
	Habits          []model.Habit
	Time            *model.TimeStatistics
	Insights        *model.Insights
	Recommendations []string
}

type Sources struct {
	Tasks    *services.TaskService
	Habits   *services.HabitService
	Timer    *services.TimerService
	Insights *services.InsightsService
	Clock    services.Clock
}

// Collect reads a consistent-enough snapshot of every store for the trailing window.
func Collect(ctx context.Context, src Sources, days int) (*Data, error) {
	now := time.Now
	if src.Clock != nil {
		now = src.Clock
	}

	tasks, err := src.Tasks.ListTasks(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	habits, err := src.Habits.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	timeStats, err := src.Timer.Statistics(ctx, days)
	if err != nil {
		return nil, err
	}
	insights, err := src.Insights.ProductivityInsights(ctx, days)
	if err != nil {
		return nil, err
	}

	return &Data{
		GeneratedAt:     now(),
		Days:            days,
		Tasks:           tasks,
		Habits:          habits,
		Time:            timeStats,
		Insights:        insights,
		Recommendations: services.Recommend(insights),
	}, nil
}

// Build renders data into a new workbook. The caller closes it.
func Build(data *Data) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetTasks, SheetHabits, SheetTime} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &sheetWriter{f: f, headerStyle: headerStyle}
	w.summary(data)
	w.tasks(data.Tasks)
	w.habits(data.Habits)
	w.sessions(data.Time)

	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

func Write(out io.Writer, data *Data) error {
	f, err := Build(data)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(out)
	return err
}

// WriteFile saves the workbook under dir with a unique name and returns its path.
func WriteFile(dir string, data *Data) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	f, err := Build(data)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, FileName(data.GeneratedAt))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

func FileName(at time.Time) string {
	return fmt.Sprintf("productivity_%s_%s.xlsx", at.Format("20060102"), uuid.NewString()[:8])
}

type sheetWriter struct {
	f           *excelize.File
	headerStyle int
	err         error
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) header(sheet string, titles ...string) {
	values := make([]any, len(titles))
	for i, title := range titles {
		values[i] = title
	}
	w.row(sheet, 1, values...)
	if w.err != nil {
		return
	}

	last, err := excelize.CoordinatesToCellName(len(titles), 1)
	if err != nil {
		w.err = err
		return
	}
	if w.err = w.f.SetCellStyle(sheet, "A1", last, w.headerStyle); w.err != nil {
		return
	}
	w.err = w.f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (w *sheetWriter) summary(data *Data) {
	w.header(SheetSummary, "Metric", "Value")
	w.row(SheetSummary, 2, "Generated at", data.GeneratedAt.Format(timeLayout))
	w.row(SheetSummary, 3, "Window (days)", data.Days)

	r := 4
	if in := data.Insights; in != nil {
		w.row(SheetSummary, r, "Productivity score", in.ProductivityScore)
		w.row(SheetSummary, r+1, "Task completion rate", in.TaskCompletionRate)
		w.row(SheetSummary, r+2, "Habit completion rate", in.HabitCompletionRate)
		w.row(SheetSummary, r+3, "Average streak", in.AverageStreak)
		w.row(SheetSummary, r+4, "Time tracked (minutes)", in.TotalTimeTracked)
		w.row(SheetSummary, r+5, "Overdue tasks", in.OverdueTasks)
		w.row(SheetSummary, r+6, "Habits", in.TotalHabits)
		r += 7
	}

	r++
	for i, rec := range data.Recommendations {
		label := ""
		if i == 0 {
			label = "Recommendations"
		}
		w.row(SheetSummary, r+i, label, rec)
	}

	if w.err == nil {
		w.err = w.f.SetColWidth(SheetSummary, "A", "A", 26)
	}
	if w.err == nil {
		w.err = w.f.SetColWidth(SheetSummary, "B", "B", 70)
	}
}

func (w *sheetWriter) tasks(tasks []model.Task) {
	w.header(SheetTasks, "ID", "Title", "Status", "Priority", "Category",
		"Created", "Due", "Completed", "Estimated (min)", "Actual (min)", "Tags")

	for i, t := range tasks {
		w.row(SheetTasks, i+2,
			t.ID,
			t.Title,
			string(t.Status),
			string(t.Priority),
			t.Category,
			t.CreatedDate.Local().Format(timeLayout),
			formatOptional(t.DueDate),
			formatOptional(t.CompletedDate),
			t.EstimatedDuration,
			t.ActualDuration,
			strings.Join(t.Tags, ", "),
		)
	}

	if w.err == nil {
		w.err = w.f.SetColWidth(SheetTasks, "B", "B", 40)
	}
}

func (w *sheetWriter) habits(habits []model.Habit) {
	w.header(SheetHabits, "ID", "Name", "Frequency", "Streak", "Created", "Last completed")

	for i, h := range habits {
		w.row(SheetHabits, i+2,
			h.ID,
			h.Name,
			h.Frequency,
			h.StreakCount,
			h.CreatedDate.Local().Format(timeLayout),
			formatOptional(h.LastCompleted),
		)
	}

	if w.err == nil {
		w.err = w.f.SetColWidth(SheetHabits, "B", "B", 30)
	}
}

func (w *sheetWriter) sessions(stats *model.TimeStatistics) {
	w.header(SheetTime, "Date", "Seconds", "Minutes")
	if stats == nil {
		return
	}

	for i, day := range stats.DailyBreakdown {
		w.row(SheetTime, i+2, day.Date, day.TotalTime, day.TotalTime/60)
	}

	r := len(stats.DailyBreakdown) + 3
	w.row(SheetTime, r, "Total (minutes)", "", stats.TotalTimeMinutes)
	kinds := make([]string, 0, len(stats.TimeByTypeSeconds))
	for kind := range stats.TimeByTypeSeconds {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		seconds := stats.TimeByTypeSeconds[constants.SessionType(kind)]
		r++
		w.row(SheetTime, r, kind, seconds, seconds/60)
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(timeLayout)
}
