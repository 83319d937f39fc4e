package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ListingEventCreated = "CREATED"
	ListingEventUpdated = "UPDATED"
	ListingEventDeleted = "DELETED"
)

// ListingEvent is the append-only audit trail of listing mutations.
type ListingEvent struct {
	EventID   string         `gorm:"column:event_id;primaryKey;size:64" json:"event_id"`
	ListingID string         `gorm:"column:listing_id;index;not null" json:"listing_id"`
	EventType string         `gorm:"column:event_type;size:16;not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	ActorID   string         `gorm:"column:actor_id;index" json:"actor_id"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"createdAt"`
}

func (ListingEvent) TableName() string {
	return "listing_events"
}

func (e *ListingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	return nil
}
