package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var insightsDays int

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Print the productivity score and recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.Close()

		ctx := cmd.Context()
		insights, err := a.insights.ProductivityInsights(ctx, insightsDays)
		if err != nil {
			return err
		}
		recs, err := a.insights.Recommendations(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Productivity score:    %d/100\n", insights.ProductivityScore)
		fmt.Fprintf(out, "Task completion rate:  %.2f%%\n", insights.TaskCompletionRate)
		fmt.Fprintf(out, "Habit completion rate: %.1f%%\n", insights.HabitCompletionRate)
		fmt.Fprintf(out, "Average streak:        %.1f\n", insights.AverageStreak)
		fmt.Fprintf(out, "Time tracked:          %d min (last %d days)\n", insights.TotalTimeTracked, insightsDays)
		fmt.Fprintf(out, "Overdue tasks:         %d\n\n", insights.OverdueTasks)

		for _, rec := range recs {
			fmt.Fprintf(out, "- %s\n", rec)
		}
		return nil
	},
}

func init() {
	insightsCmd.Flags().IntVar(&insightsDays, "days", 7, "trailing window in days")
	rootCmd.AddCommand(insightsCmd)
}
