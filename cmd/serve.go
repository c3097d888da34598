package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	httpapi "productivity-tracker.com/productivity-tracker/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the JSON API used by the desktop client and publishes timer events",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(echomw.Recover())
		e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
			LogMethod:  true,
			LogURI:     true,
			LogStatus:  true,
			LogLatency: true,
			LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
				a.logger.Debug().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
				return nil
			},
		}))

		handler := httpapi.NewHandler(a.tasks, a.habits, a.timer, a.insights, nil, a.logger)
		httpapi.Register(e, handler, a.cfg.RateLimit)

		go func() {
			a.logger.Info().Str("addr", a.cfg.AppURL).Msg("HTTP server listening")
			if err := e.Start(a.cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error().Err(err).Msg("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn().Err(err).Msg("http shutdown")
		}
		if err := a.timer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn().Err(err).Msg("timer shutdown")
		}

		a.logger.Info().Msg("HTTP server and timer shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
