package config

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
)

// NewDatabaseClient opens the store and ensures the schema. Failure here is fatal.
func NewDatabaseClient(dsn string) *repository.Gateway {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Str("dsn", dsn).Msg("db open failed")
	}

	gateway, err := repository.NewGateway(db)
	if err != nil {
		log.Fatal().Err(err).Msg("db configure failed")
	}

	if err := gateway.Ensure(); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	return gateway
}
