package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"productivity-tracker.com/productivity-tracker/internal/report"
)

var (
	exportDays int
	exportDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an Excel productivity report",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.Close()

		data, err := report.Collect(cmd.Context(), report.Sources{
			Tasks:    a.tasks,
			Habits:   a.habits,
			Timer:    a.timer,
			Insights: a.insights,
		}, exportDays)
		if err != nil {
			return err
		}

		dir := exportDir
		if dir == "" {
			dir = a.cfg.ExportDir
		}

		path, err := report.WriteFile(dir, data)
		if err != nil {
			return err
		}

		a.logger.Info().Str("path", path).Int("tasks", len(data.Tasks)).Int("habits", len(data.Habits)).Msg("report written")
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportDays, "days", 30, "trailing window in days")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (defaults to EXPORT_DIR)")
	rootCmd.AddCommand(exportCmd)
}
