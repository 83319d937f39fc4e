package profiles

import (
	"context"
	"errors"
	"strings"

	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/pkg/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProfileNotFound = errors.New("Profile not found")
	ErrUserRequired    = errors.New("user_id is required")
)

// ProfileInput is a partial update: empty fields keep what is stored.
type ProfileInput struct {
	Name        string `json:"name" validate:"max=120"`
	Document    string `json:"document" validate:"omitempty,document"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	CEP         string `json:"cep" validate:"omitempty,cep"`
	Address     string `json:"address" validate:"max=300"`
	City        string `json:"city" validate:"max=120"`
	State       string `json:"state" validate:"omitempty,len=2,alpha"`
	ProfileType string `json:"profileType" validate:"omitempty,profiletype"`
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert merges in into the stored profile, creating it when absent.
// Document, CEP and phone are stored as digits only.
func (s *Service) Upsert(ctx context.Context, userID string, in ProfileInput) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	in = trimInput(in)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		p = &domain.UserProfile{UserID: userID}
	} else if err != nil {
		return nil, err
	}
	merge(p, in)

	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(p).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func trimInput(in ProfileInput) ProfileInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Document = strings.TrimSpace(in.Document)
	in.Phone = strings.TrimSpace(in.Phone)
	in.CEP = strings.TrimSpace(in.CEP)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	in.ProfileType = strings.TrimSpace(in.ProfileType)
	return in
}

func merge(p *domain.UserProfile, in ProfileInput) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Name, in.Name)
	set(&p.Document, validation.Digits(in.Document))
	set(&p.Phone, validation.Digits(in.Phone))
	set(&p.CEP, validation.Digits(in.CEP))
	set(&p.Address, in.Address)
	set(&p.City, in.City)
	set(&p.State, in.State)
	set(&p.ProfileType, in.ProfileType)
}
