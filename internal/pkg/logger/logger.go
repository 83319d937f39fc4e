package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Development gets a console writer,
// everything else JSON lines on stdout.
func Setup(level, env string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "conecta-pro-api").Logger()
	}
	// zerolog.Ctx falls back to the global logger for contexts Tracing never saw.
	zerolog.DefaultContextLogger = &log.Logger
}
