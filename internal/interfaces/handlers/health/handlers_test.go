package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	healthsvc "github.com/b2ygroup/conecta-pro/internal/application/health"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

func setupHealthApp(t *testing.T) (*fiber.App, *healthsvc.Stats) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	stats := &healthsvc.Stats{Rdb: rdb}
	h := &Handlers{Rdb: rdb, DB: okPinger{}, Stats: stats, HealthAdminKey: "k1"}
	app := fiber.New()
	app.Get("/health/json", h.JSON)
	app.Get("/health/errors", h.Errors)
	app.Post("/health/reset", h.Reset)
	return app, stats
}

func TestHealthJSON(t *testing.T) {
	app, stats := setupHealthApp(t)
	ctx := context.Background()
	stats.RequestStarted(ctx, healthsvc.RequestInfo{Method: "GET", Path: "/api/anuncios"})
	stats.RequestStarted(ctx, healthsvc.RequestInfo{Method: "GET", Path: "/api/categorias"})
	stats.RequestFailed(ctx, healthsvc.ErrorEntry{Method: "GET", Path: "/api/anuncios", Status: 500, Message: "db down"})

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "conecta-pro-api", body["service"])
	assert.Equal(t, "ok", body["status"])
	traffic := body["traffic"].(map[string]interface{})
	assert.Equal(t, 2.0, traffic["totalRequests"])
	assert.Equal(t, 1.0, traffic["failedCount"])
	assert.Equal(t, "50.0", traffic["successRate"])

	resp, err = app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	var errs []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "db down", errs[0]["message"])
}

func TestHealthReset(t *testing.T) {
	app, stats := setupHealthApp(t)
	stats.RequestFailed(context.Background(), healthsvc.ErrorEntry{Status: 500})

	resp, err := app.Test(httptest.NewRequest("POST", "/health/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/health/reset?key=k1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	entries, err := stats.Errors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
