package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionConfig drives the Redis-backed session cookie.
type SessionConfig struct {
	Secret            string // signs the cookie value; unsigned when empty
	AllowCrossSiteDev bool
	IsProduction      bool
}

const (
	SessionCookieName  = "cp.sid"
	SessionRedisPrefix = "session:"
	UserSessionsPrefix = "user_sessions:"
	sessionMaxAge      = 7 * 24 * time.Hour
	sessionLocal       = "session"
)

// SessionUser is what the session stores about the signed-in user.
type SessionUser struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type sessionData struct {
	User *SessionUser `json:"user,omitempty"`
}

type sessionState struct {
	id        string
	prevID    string
	data      sessionData
	dirty     bool
	destroyed bool
}

// Session loads the session named by the cookie and saves it after the handler
// chain when it changed. Sessions are only written once a user signs in.
func Session(cfg SessionConfig, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		st := &sessionState{id: parseSessionCookie(c.Cookies(SessionCookieName), cfg.Secret)}
		if st.id != "" {
			b, err := rdb.Get(ctx, SessionRedisPrefix+st.id).Bytes()
			switch {
			case err == nil:
				_ = json.Unmarshal(b, &st.data)
			case err != redis.Nil:
				log.Warn().Err(err).Msg("session: load failed")
			}
		}
		c.Locals(sessionLocal, st)

		if err := c.Next(); err != nil {
			return err
		}
		st.persist(ctx, rdb)
		return nil
	}
}

func (st *sessionState) persist(ctx context.Context, rdb *redis.Client) {
	pipe := rdb.TxPipeline()
	if st.prevID != "" {
		pipe.Del(ctx, SessionRedisPrefix+st.prevID)
	}
	switch {
	case st.destroyed:
		pipe.Del(ctx, SessionRedisPrefix+st.id)
		if st.data.User != nil {
			pipe.SRem(ctx, UserSessionsPrefix+st.data.User.UserID, st.id)
		}
	case st.dirty && st.data.User != nil:
		b, _ := json.Marshal(st.data)
		pipe.Set(ctx, SessionRedisPrefix+st.id, b, sessionMaxAge)
		pipe.SAdd(ctx, UserSessionsPrefix+st.data.User.UserID, st.id)
	default:
		return
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error().Err(err).Msg("session: save failed")
	}
}

func state(c *fiber.Ctx) *sessionState {
	st, _ := c.Locals(sessionLocal).(*sessionState)
	return st
}

// CurrentUser returns the signed-in user, if any.
func CurrentUser(c *fiber.Ctx) (*SessionUser, bool) {
	st := state(c)
	if st == nil || st.destroyed || st.data.User == nil {
		return nil, false
	}
	return st.data.User, true
}

// SessionID returns the current session id, "" when there is none.
func SessionID(c *fiber.Ctx) string {
	if st := state(c); st != nil {
		return st.id
	}
	return ""
}

// SetSessionUser attaches user to the request's session without persisting it.
func SetSessionUser(c *fiber.Ctx, user SessionUser) {
	setUser(c, user)
}

func setUser(c *fiber.Ctx, user SessionUser) *sessionState {
	st := state(c)
	if st == nil {
		st = &sessionState{}
		c.Locals(sessionLocal, st)
	}
	st.data.User = &user
	st.destroyed = false
	return st
}

// StartSession signs user in under a fresh session id and sets the cookie.
// Any previous session on this client is dropped.
func StartSession(c *fiber.Ctx, cfg SessionConfig, user SessionUser) {
	prev := SessionID(c)
	st := setUser(c, user)
	st.prevID = prev
	st.id = uuid.NewString()
	st.dirty = true

	cookie := SessionCookie(cfg)
	cookie.Value = signSessionID(st.id, cfg.Secret)
	c.Cookie(&cookie)
}

// EndSession signs the user out and clears the cookie.
func EndSession(c *fiber.Ctx, cfg SessionConfig) {
	if st := state(c); st != nil && st.id != "" {
		st.destroyed = true
	}
	cookie := SessionCookie(cfg)
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.Cookie(&cookie)
}

// SessionCookie returns the cookie attributes shared by set and clear.
func SessionCookie(cfg SessionConfig) fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	secure := cfg.IsProduction
	if cfg.AllowCrossSiteDev {
		sameSite = fiber.CookieSameSiteNoneMode
		secure = true
	}
	return fiber.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}

// Cookie values look like "s:<id>.<signature>".
func signSessionID(id, secret string) string {
	if secret == "" {
		return "s:" + id
	}
	return "s:" + id + "." + signature(id, secret)
}

func signature(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
}

// parseSessionCookie returns the session id, or "" when the cookie is absent,
// malformed or carries a bad signature.
func parseSessionCookie(raw, secret string) string {
	if !strings.HasPrefix(raw, "s:") {
		return ""
	}
	id, sig, signed := strings.Cut(raw[2:], ".")
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	if secret == "" {
		return id
	}
	if !signed || !hmac.Equal([]byte(sig), []byte(signature(id, secret))) {
		return ""
	}
	return id
}

// DestroyUserSessions drops every session userID holds, on any device.
func DestroyUserSessions(ctx context.Context, rdb *redis.Client, userID string) error {
	if userID == "" {
		return nil
	}
	key := UserSessionsPrefix + userID
	ids, err := rdb.SMembers(ctx, key).Result()
	if err != nil {
		return err
	}
	pipe := rdb.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, SessionRedisPrefix+id)
	}
	pipe.Del(ctx, key)
	_, err = pipe.Exec(ctx)
	return err
}
