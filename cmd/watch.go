package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"productivity-tracker.com/productivity-tracker/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow timer events published by a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.Close()

		if a.redis == nil {
			return errors.New("watch needs REDIS_HOST to be set")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		subscriber := events.NewRedisPublisher(a.redis, a.cfg.RedisEventsChannel)

		a.logger.Info().Str("channel", a.cfg.RedisEventsChannel).Msg("watching timer events")
		err := subscriber.Subscribe(ctx, func(event events.Event) {
			fmt.Fprintf(out, "%s %-9s %-14s session=%d %02d:%02d\n",
				event.At.Local().Format("15:04:05"), event.Type, event.Kind, event.SessionID, event.Minutes, event.Seconds)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
