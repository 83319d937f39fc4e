// Package bootstrap builds the API for hosts that cannot import internal/
// packages, such as the serverless handler under api/.
package bootstrap

import (
	"github.com/b2ygroup/conecta-pro/internal/config"
	"github.com/b2ygroup/conecta-pro/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
)

func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// Serverless instances share one schema; migrations run from cmd/api or cmd/seed.
	cfg.AutoMigrate = false
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
