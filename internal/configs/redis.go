package config

import (
	"github.com/redis/rueidis"
	"github.com/rs/zerolog/log"
)

// NewRedisClient returns nil when no address is configured.
func NewRedisClient(addr string) rueidis.Client {
	if addr == "" {
		return nil
	}

	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("failed to create redis client")
	}

	return redisClient
}
