package domain

import "time"

// SavedListing is a user's bookmark. The (user, listing) pair is the key.
type SavedListing struct {
	UserID    string    `gorm:"column:user_id;primaryKey;size:64" json:"-"`
	ListingID string    `gorm:"column:listing_id;primaryKey;size:64;index" json:"id"`
	Title     string    `gorm:"column:title" json:"title"`
	SavedAt   time.Time `gorm:"column:saved_at;index" json:"savedAt"`
}

func (SavedListing) TableName() string {
	return "saved_listings"
}
