package auth

import (
	authsvc "github.com/b2ygroup/conecta-pro/internal/application/auth"
	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/middleware"
	"github.com/b2ygroup/conecta-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var statusMap = response.StatusMap{
	authsvc.ErrEmailPasswordRequired: fiber.StatusBadRequest,
	authsvc.ErrInvalidEmail:          fiber.StatusUnauthorized,
	authsvc.ErrIncorrectPassword:     fiber.StatusUnauthorized,
	authsvc.ErrNameRequired:          fiber.StatusBadRequest,
	authsvc.ErrInvalidEmailFormat:    fiber.StatusBadRequest,
	authsvc.ErrWeakPassword:          fiber.StatusBadRequest,
	authsvc.ErrInvalidProfileType:    fiber.StatusBadRequest,
	authsvc.ErrEmailTaken:            fiber.StatusConflict,
}

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder authsvc.UserFinder
	Accounts   *authsvc.Service
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func sessionUser(u *domain.UserAccount) middleware.SessionUser {
	return middleware.SessionUser{UserID: u.UserID, Name: u.Name, Email: u.Email}
}

// Signup POST /api/v1/auth/signup creates the account and signs it in.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var in authsvc.SignUpInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	account, err := h.Accounts.SignUp(c.UserContext(), in)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	user := sessionUser(account)
	middleware.StartSession(c, h.Config, user)
	log.Info().Str("user_id", user.UserID).Msg("auth: signup")
	return response.SuccessCreated(c, "Account created successfully", fiber.Map{"user": user}, nil)
}

// Login POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, authsvc.ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}
	account, err := h.UserFinder.FindByEmailAndPassword(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	user := sessionUser(account)
	middleware.StartSession(c, h.Config, user)
	return response.Success(c, "Login successful", fiber.Map{"user": user}, nil)
}

// Me GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		log.Debug().Bool("cookie_present", c.Cookies(middleware.SessionCookieName) != "").
			Msg("auth/me: no signed-in user")
		return response.Unauthorized(c, authsvc.ErrNotAuthenticated.Error())
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	middleware.EndSession(c, h.Config)
	return response.Success(c, "Logged out successfully", nil, nil)
}

// LogoutAll DELETE /api/v1/auth/sessions signs the user out on every device.
func (h *Handlers) LogoutAll(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, authsvc.ErrNotAuthenticated.Error())
	}
	if err := middleware.DestroyUserSessions(c.UserContext(), h.Rdb, user.UserID); err != nil {
		return response.FromError(c, err, nil)
	}
	// The current session is gone from Redis already; only the cookie is left.
	middleware.EndSession(c, h.Config)
	return response.Success(c, "Logged out of all sessions", nil, nil)
}
