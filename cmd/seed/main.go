// Command seed loads the demo listings into the configured database.
package main

import (
	"context"

	"github.com/b2ygroup/conecta-pro/internal/config"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/database"
	"github.com/b2ygroup/conecta-pro/internal/pkg/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	logger.Setup(cfg.LogLevel, cfg.Env)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	n, err := database.Seed(context.Background(), db)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int64("inserted", n).Int("total", len(database.SeedListings())).Msg("seed complete")
}
