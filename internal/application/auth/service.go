package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/b2ygroup/conecta-pro/internal/application/emails"
	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/pkg/constants"
	"github.com/b2ygroup/conecta-pro/internal/pkg/validation"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

type SignUpInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	ProfileType string `json:"profileType"`
}

// UserFinder abstracts credential lookup so handlers can be tested without a database.
type UserFinder interface {
	FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.UserAccount, error)
}

type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.UserAccount, error) {
	return Login(ctx, g.DB, email, password)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks credentials. Email matching is case-insensitive.
func Login(ctx context.Context, db *gorm.DB, email, password string) (*domain.UserAccount, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u domain.UserAccount
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &u, nil
}

type Service struct {
	DB     *gorm.DB
	Emails emails.Sender // optional
}

// SignUp creates the account and its profile together, then sends the welcome
// email. A failed email does not fail the signup.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*domain.UserAccount, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	switch {
	case name == "":
		return nil, ErrNameRequired
	case !validation.IsValidEmail(email):
		return nil, ErrInvalidEmailFormat
	case !validation.IsValidPassword(in.Password):
		return nil, ErrWeakPassword
	case in.ProfileType != "" && !constants.IsValidProfileType(in.ProfileType):
		return nil, ErrInvalidProfileType
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&domain.UserAccount{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.UserAccount{Email: email, PasswordHash: string(hash), Name: name}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(account).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create account: %w", err)
	}
	if err := tx.Create(&domain.UserProfile{
		UserID:      account.UserID,
		Name:        name,
		ProfileType: in.ProfileType,
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if s.Emails != nil {
		if err := s.Emails.SendWelcome(ctx, account.Email, name); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", account.UserID).Msg("auth: welcome email failed")
		}
	}
	return account, nil
}
