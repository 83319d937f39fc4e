package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is one thread per (listing, participant pair). ID is canonical,
// see messaging.ConversationID.
type Conversation struct {
	ID            string    `gorm:"column:id;primaryKey;size:255" json:"id"`
	ListingID     string    `gorm:"column:listing_id;index;not null" json:"listingId"`
	OwnerID       string    `gorm:"column:owner_id;index;not null" json:"-"`
	BuyerID       string    `gorm:"column:buyer_id;index;not null" json:"-"`
	LastMessage   string    `gorm:"column:last_message;type:text" json:"lastMessage"`
	LastMessageAt time.Time `gorm:"column:last_message_at;index" json:"lastMessageTimestamp"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ParticipantIDs returns [owner, buyer].
func (c Conversation) ParticipantIDs() []string {
	return []string{c.OwnerID, c.BuyerID}
}

func (c Conversation) HasParticipant(userID string) bool {
	return userID != "" && (c.OwnerID == userID || c.BuyerID == userID)
}

// OtherParticipant returns the id that is not userID.
func (c Conversation) OtherParticipant(userID string) string {
	if c.OwnerID == userID {
		return c.BuyerID
	}
	return c.OwnerID
}

// MarshalJSON adds participantIds to the wire shape.
func (c Conversation) MarshalJSON() ([]byte, error) {
	type alias Conversation
	return json.Marshal(struct {
		alias
		ParticipantIDs []string `json:"participantIds"`
	}{alias(c), c.ParticipantIDs()})
}

// Message is append-only. Ordered by SentAt, then ID (v7, time ordered).
type Message struct {
	ID             string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	ConversationID string    `gorm:"column:conversation_id;index;not null" json:"conversationId"`
	SenderID       string    `gorm:"column:sender_id;not null" json:"senderId"`
	Text           string    `gorm:"column:text;type:text;not null" json:"text"`
	SentAt         time.Time `gorm:"column:sent_at;index" json:"timestamp"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		m.ID = id.String()
	}
	return nil
}
