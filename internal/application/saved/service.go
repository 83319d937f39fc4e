package saved

import (
	"context"
	"errors"
	"time"

	"github.com/b2ygroup/conecta-pro/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMissingIDs = errors.New("user_id and listing_id are required")

type Service struct {
	DB *gorm.DB
}

// Save bookmarks a listing. Saving it again refreshes title and saved time.
func (s *Service) Save(ctx context.Context, userID, listingID, title string) (*domain.SavedListing, error) {
	if userID == "" || listingID == "" {
		return nil, ErrMissingIDs
	}
	rec := &domain.SavedListing{
		UserID:    userID,
		ListingID: listingID,
		Title:     title,
		SavedAt:   time.Now().UTC(),
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "listing_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "saved_at"}),
	}).Create(rec).Error
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Remove is a no-op when the listing was not saved.
func (s *Service) Remove(ctx context.Context, userID, listingID string) error {
	if userID == "" || listingID == "" {
		return ErrMissingIDs
	}
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&domain.SavedListing{}).Error
}

func (s *Service) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&domain.SavedListing{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&n).Error
	return n > 0, err
}

// ListSaved returns the user's bookmarks, most recent first.
func (s *Service) ListSaved(ctx context.Context, userID string) ([]domain.SavedListing, error) {
	out := []domain.SavedListing{}
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
