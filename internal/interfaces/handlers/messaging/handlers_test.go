package messaging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	msgsvc "github.com/b2ygroup/conecta-pro/internal/application/messaging"
	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/infrastructure/database"
	"github.com/b2ygroup/conecta-pro/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMessagingApp(t *testing.T) (*gorm.DB, func(userID string) *fiber.App) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, db.Create(&domain.UserAccount{UserID: "seller_xyz", Email: "s@x.com", PasswordHash: "h", Name: "Rui"}).Error)
	require.NoError(t, db.Create(&domain.UserAccount{UserID: "buyer_abc", Email: "b@x.com", PasswordHash: "h", Name: "Ana"}).Error)
	require.NoError(t, db.Create(&domain.Listing{ID: "4", Title: "Startup de SaaS", Sector: "Tecnologia", OwnerID: "seller_xyz"}).Error)

	h := &Handlers{Service: &msgsvc.Service{DB: db}}
	return db, func(userID string) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			middleware.SetSessionUser(c, middleware.SessionUser{UserID: userID})
			return c.Next()
		})
		app.Post("/conversations", h.StartConversation)
		app.Get("/conversations", h.Inbox)
		app.Get("/conversations/:conversation_id/messages", h.Messages)
		app.Post("/conversations/:conversation_id/messages", h.SendMessage)
		app.Get("/conversations/:conversation_id/stream", h.Stream)
		return app
	}
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestConversationFlow(t *testing.T) {
	_, appFor := setupMessagingApp(t)
	buyer := appFor("buyer_abc")
	seller := appFor("seller_xyz")

	code, body := call(t, buyer, "POST", "/conversations", map[string]string{"listing_id": "4"})
	require.Equal(t, 200, code, body)
	convID := body["data"].(map[string]interface{})["id"].(string)
	assert.Equal(t, "4_buyer_abc_seller_xyz", convID)

	code, _ = call(t, buyer, "POST", "/conversations/"+convID+"/messages", map[string]string{"text": "Olá, ainda disponível?"})
	assert.Equal(t, 201, code)
	code, body = call(t, buyer, "POST", "/conversations/"+convID+"/messages", map[string]string{"text": "   "})
	assert.Equal(t, 200, code)
	assert.Nil(t, body["data"])

	code, body = call(t, seller, "GET", "/conversations/"+convID+"/messages", nil)
	assert.Equal(t, 200, code)
	msgs := body["data"].([]interface{})
	require.Len(t, msgs, 1)
	assert.Equal(t, "buyer_abc", msgs[0].(map[string]interface{})["senderId"])

	code, body = call(t, seller, "GET", "/conversations", nil)
	assert.Equal(t, 200, code)
	entries := body["data"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "Olá, ainda disponível?", entry["lastMessage"])
	assert.Equal(t, "Ana", entry["otherParticipant"].(map[string]interface{})["name"])
}

func TestStartConversation_Errors(t *testing.T) {
	_, appFor := setupMessagingApp(t)
	code, _ := call(t, appFor("buyer_abc"), "POST", "/conversations", map[string]string{})
	assert.Equal(t, 400, code)
	code, _ = call(t, appFor("buyer_abc"), "POST", "/conversations", map[string]string{"listing_id": "missing"})
	assert.Equal(t, 404, code)
	code, _ = call(t, appFor("seller_xyz"), "POST", "/conversations", map[string]string{"listing_id": "4"})
	assert.Equal(t, 400, code)
}

func TestOutsiderIsForbidden(t *testing.T) {
	_, appFor := setupMessagingApp(t)
	code, _ := call(t, appFor("buyer_abc"), "POST", "/conversations", map[string]string{"listing_id": "4"})
	require.Equal(t, 200, code)

	stranger := appFor("stranger")
	path := "/conversations/4_buyer_abc_seller_xyz"
	code, _ = call(t, stranger, "GET", path+"/messages", nil)
	assert.Equal(t, 403, code)
	code, _ = call(t, stranger, "POST", path+"/messages", map[string]string{"text": "oi"})
	assert.Equal(t, 403, code)
	code, _ = call(t, stranger, "GET", path+"/stream", nil)
	assert.Equal(t, 403, code)
}

func TestStream_WithoutNotifier(t *testing.T) {
	_, appFor := setupMessagingApp(t)
	buyer := appFor("buyer_abc")
	code, _ := call(t, buyer, "POST", "/conversations", map[string]string{"listing_id": "4"})
	require.Equal(t, 200, code)
	code, _ = call(t, buyer, "GET", "/conversations/4_buyer_abc_seller_xyz/stream", nil)
	assert.Equal(t, 503, code)
}

func TestWriteSnapshots(t *testing.T) {
	updates := make(chan []domain.Message, 2)
	updates <- []domain.Message{}
	updates <- []domain.Message{{ID: "m1", ConversationID: "c", SenderID: "u", Text: "oi"}}
	close(updates)

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, writeSnapshots(w, updates, time.Hour))

	events := strings.Split(strings.TrimSuffix(buf.String(), "\n\n"), "\n\n")
	require.Len(t, events, 2)
	assert.Equal(t, "data: []", events[0])
	assert.True(t, strings.HasPrefix(events[1], `data: [{"id":"m1"`))
}
