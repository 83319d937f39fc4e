package handler

import (
	"net/http"
	"sync"

	"github.com/b2ygroup/conecta-pro/bootstrap"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	handler http.HandlerFunc
	initErr error
)

// Handler is the serverless entry point; all requests are rewritten here. The
// app is built on the first request so a cold start without Postgres or Redis
// answers 503 instead of crashing the function.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		app, err := bootstrap.New()
		if err != nil {
			initErr = err
			log.Error().Err(err).Msg("serverless: app create failed")
			return
		}
		handler = adaptor.FiberApp(app)
	})
	if initErr != nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	r.RequestURI = r.URL.String()
	handler(w, r)
}
