package listingevents

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/b2ygroup/conecta-pro/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrForbidden       = errors.New("Only the listing owner can view its history")
)

type Service struct {
	DB *gorm.DB
}

// Record appends an event using db, which is normally the caller's transaction.
func Record(db *gorm.DB, listingID, eventType, actorID string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return db.Create(&domain.ListingEvent{
		ListingID: listingID,
		EventType: eventType,
		EventData: datatypes.JSON(raw),
		ActorID:   actorID,
	}).Error
}

// ListForListing returns a listing's history, oldest first. Only the owner may
// read it. Events of a deleted listing stay readable by whoever deleted it.
func (s *Service) ListForListing(ctx context.Context, listingID, actorID string) ([]domain.ListingEvent, error) {
	var listing domain.Listing
	err := s.DB.WithContext(ctx).Select("id", "owner_id").Where("id = ?", listingID).First(&listing).Error
	switch {
	case err == nil:
		if listing.OwnerID != actorID {
			return nil, ErrForbidden
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		var n int64
		if err := s.DB.WithContext(ctx).Model(&domain.ListingEvent{}).
			Where("listing_id = ? AND event_type = ? AND actor_id = ?", listingID, domain.ListingEventDeleted, actorID).
			Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrListingNotFound
		}
	default:
		return nil, err
	}

	events := []domain.ListingEvent{}
	if err := s.DB.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
