package cmd

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/rueidis"
	"github.com/rs/zerolog"

	config "productivity-tracker.com/productivity-tracker/internal/configs"
	"productivity-tracker.com/productivity-tracker/internal/events"
	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
	"productivity-tracker.com/productivity-tracker/internal/services"
)

// app holds the wired stores shared by every command.
type app struct {
	cfg       config.Config
	logger    zerolog.Logger
	gateway   *repository.Gateway
	redis     rueidis.Client
	publisher events.Publisher

	tasks    *services.TaskService
	habits   *services.HabitService
	timer    *services.TimerService
	insights *services.InsightsService
}

func newApp() *app {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)
	if envErr != nil {
		logger.Debug().Msg(".env file not found, using environment variables")
	}

	gateway := config.NewDatabaseClient(cfg.DatabaseDSN)
	redisClient := config.NewRedisClient(cfg.RedisAddr)

	var publisher events.Publisher = events.NopPublisher{}
	if redisClient != nil {
		publisher = events.NewRedisPublisher(redisClient, cfg.RedisEventsChannel)
	}

	tasks := services.NewTaskService(repository.NewTaskRepository(gateway), nil, logger)
	habits := services.NewHabitService(repository.NewHabitRepository(gateway), nil, logger)
	timer := services.NewTimerService(repository.NewSessionRepository(gateway), publisher, services.TimerOptions{
		WorkMinutes:  cfg.WorkMinutes,
		BreakMinutes: cfg.BreakMinutes,
		Logger:       logger,
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		gateway:   gateway,
		redis:     redisClient,
		publisher: publisher,
		tasks:     tasks,
		habits:    habits,
		timer:     timer,
		insights:  services.NewInsightsService(tasks, timer, habits),
	}
}

func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.timer.Shutdown(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("failed to stop timer")
	}

	if a.redis != nil {
		a.redis.Close()
	}
	if err := a.gateway.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close database")
	}
}
