package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	RedisEventsChannel     string
	ShutdownTimeoutSeconds int
	WorkMinutes            int
	BreakMinutes           int
	LogLevel               string
	ExportDir              string
}

// fileConfig mirrors the optional YAML file named by CONFIG_FILE.
// Environment variables take precedence over it.
type fileConfig struct {
	App struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"app"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Pomodoro struct {
		WorkMinutes  int `yaml:"work_minutes"`
		BreakMinutes int `yaml:"break_minutes"`
	} `yaml:"pomodoro"`
	Redis struct {
		Host    string `yaml:"host"`
		Port    string `yaml:"port"`
		Channel string `yaml:"channel"`
	} `yaml:"redis"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
}

func Load() Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

func Parse() (Config, error) {
	fc, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	appHost := getEnv("APP_HOST", or(fc.App.Host, "127.0.0.1"))
	appPort := getEnv("APP_PORT", or(fc.App.Port, "8080"))
	redisHost := getEnv("REDIS_HOST", fc.Redis.Host)
	redisPort := getEnv("REDIS_PORT", or(fc.Redis.Port, "6379"))

	cfg := Config{
		AppURL:             fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:        getEnv("DATABASE_DSN", or(fc.Database.DSN, "task_manager.db")),
		RedisEventsChannel: getEnv("REDIS_EVENTS_CHANNEL", or(fc.Redis.Channel, "productivity:timer")),
		LogLevel:           getEnv("LOG_LEVEL", or(fc.Log.Level, "info")),
		ExportDir:          getEnv("EXPORT_DIR", or(fc.Export.Dir, ".")),
	}
	if redisHost != "" {
		cfg.RedisAddr = fmt.Sprintf("%s:%s", redisHost, redisPort)
	}

	ints := []struct {
		dst *int
		key string
		def int
	}{
		{&cfg.RateLimit, "RATE_LIMIT_PER_MINUTE", 120},
		{&cfg.ShutdownTimeoutSeconds, "SHUTDOWN_TIMEOUT_SECONDS", 10},
		{&cfg.WorkMinutes, "POMODORO_WORK_MINUTES", orInt(fc.Pomodoro.WorkMinutes, 25)},
		{&cfg.BreakMinutes, "POMODORO_BREAK_MINUTES", orInt(fc.Pomodoro.BreakMinutes, 5)},
	}
	for _, v := range ints {
		i, err := getEnvAsInt(v.key, v.def)
		if err != nil {
			return Config{}, err
		}
		*v.dst = i
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func validate(cfg Config) error {
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.WorkMinutes <= 0 {
		return errors.New("POMODORO_WORK_MINUTES must be greater than 0")
	}
	if cfg.BreakMinutes <= 0 {
		return errors.New("POMODORO_BREAK_MINUTES must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
