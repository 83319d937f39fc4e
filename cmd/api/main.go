package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/b2ygroup/conecta-pro/internal/config"
	"github.com/b2ygroup/conecta-pro/internal/interfaces/router"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	log.Info().Msg("postgres connected")
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	log.Info().Msg("redis connected")
	cancel()

	go func() {
		log.Info().Str("port", cfg.Port).Msgf("server running at http://localhost:%s (health: /health/json)", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	_ = rdb.Close()
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}
