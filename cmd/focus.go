package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	focusBreak bool
	focusTask  uint
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Run one pomodoro session in the foreground",
	Long:  "Runs a work session (or a break with --break) and records it. Ctrl-C stops it early.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		done := make(chan struct{})

		onTick := func(minutes, seconds int, isBreak bool) {
			label := "work"
			if isBreak {
				label = "break"
			}
			fmt.Fprintf(out, "\r%s %02d:%02d ", label, minutes, seconds)
		}
		onComplete := func(isBreak bool) {
			if isBreak {
				fmt.Fprintln(out, "\nBreak is over. Back to work!")
			} else {
				fmt.Fprintln(out, "\nWork session complete. Take a break!")
			}
			close(done)
		}

		var (
			started bool
			err     error
		)
		if focusBreak {
			started, err = a.timer.StartBreak(ctx, onTick, onComplete)
		} else {
			var taskID *uint
			if focusTask > 0 {
				taskID = &focusTask
			}
			started, err = a.timer.StartWork(ctx, taskID, onTick, onComplete)
		}
		if err != nil {
			return err
		}
		if !started {
			return errors.New("a session is already running")
		}

		select {
		case <-done:
		case <-ctx.Done():
			fmt.Fprintln(out, "\nStopped.")
		}
		return a.timer.Shutdown(context.Background())
	},
}

func init() {
	focusCmd.Flags().BoolVar(&focusBreak, "break", false, "run a break instead of a work session")
	focusCmd.Flags().UintVar(&focusTask, "task", 0, "task id to attribute the work session to")
	rootCmd.AddCommand(focusCmd)
}
