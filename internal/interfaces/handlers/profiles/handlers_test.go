package profiles

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	profilesvc "github.com/b2ygroup/conecta-pro/internal/application/profiles"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/database"
	"github.com/b2ygroup/conecta-pro/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProfilesApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	h := &Handlers{Service: &profilesvc.Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetSessionUser(c, middleware.SessionUser{UserID: "u1"})
		return c.Next()
	})
	app.Get("/profiles/me", h.Me)
	app.Put("/profiles/me", h.UpdateMe)
	return app
}

func TestProfileMe(t *testing.T) {
	app := setupProfilesApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/profiles/me", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	req := httptest.NewRequest("PUT", "/profiles/me", bytes.NewReader([]byte(`{"name":"Ana","cep":"06401-000","state":"sp"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/profiles/me", nil))
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Ana", data["name"])
	assert.Equal(t, "06401000", data["cep"])
	assert.Equal(t, "SP", data["state"])
}

func TestProfileUpdate_Invalid(t *testing.T) {
	app := setupProfilesApp(t)
	req := httptest.NewRequest("PUT", "/profiles/me", bytes.NewReader([]byte(`{"document":"111.111.111-11"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid fields: document", body["error"].(map[string]interface{})["message"])
}
