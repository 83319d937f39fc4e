package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/b2ygroup/conecta-pro/internal/application/emails"
	"github.com/b2ygroup/conecta-pro/internal/domain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB       *gorm.DB
	Notifier Notifier      // nil disables live subscriptions
	Emails   emails.Sender // nil disables new-conversation emails
}

// ConversationID derives the one id shared by both participants of a listing
// thread: listing, then the smaller user id, then the larger.
func ConversationID(listingID, a, b string) string {
	if a > b {
		a, b = b, a
	}
	return listingID + "_" + a + "_" + b
}

// GetOrCreateConversation returns the canonical conversation id, creating the
// record on first contact. Calling it again with the same ids (in any order of
// owner/buyer) returns the same id and creates nothing.
func (s *Service) GetOrCreateConversation(ctx context.Context, listingID, ownerID, buyerID string) (string, error) {
	id, _, err := s.getOrCreate(ctx, listingID, ownerID, buyerID)
	return id, err
}

func (s *Service) getOrCreate(ctx context.Context, listingID, ownerID, buyerID string) (string, bool, error) {
	if listingID == "" || ownerID == "" || buyerID == "" {
		return "", false, ErrMissingIDs
	}
	if ownerID == buyerID {
		return "", false, ErrSelfConversation
	}
	id := ConversationID(listingID, ownerID, buyerID)
	now := time.Now().UTC()
	conv := &domain.Conversation{
		ID:            id,
		ListingID:     listingID,
		OwnerID:       ownerID,
		BuyerID:       buyerID,
		LastMessageAt: now,
		CreatedAt:     now,
	}
	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(conv)
	if res.Error != nil {
		return "", false, fmt.Errorf("create conversation: %w", res.Error)
	}
	return id, res.RowsAffected == 1, nil
}

// StartForListing opens (or reopens) the buyer's thread about a listing with its owner.
func (s *Service) StartForListing(ctx context.Context, listingID, buyerID string) (*domain.Conversation, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Select("id", "title", "owner_id").Where("id = ?", listingID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	id, created, err := s.getOrCreate(ctx, listing.ID, listing.OwnerID, buyerID)
	if err != nil {
		return nil, err
	}
	if created {
		s.notifyOwner(ctx, listing, buyerID)
	}
	return s.GetConversation(ctx, id)
}

func (s *Service) notifyOwner(ctx context.Context, listing domain.Listing, buyerID string) {
	if s.Emails == nil {
		return
	}
	var owner domain.UserAccount
	if err := s.DB.WithContext(ctx).Where("user_id = ?", listing.OwnerID).First(&owner).Error; err != nil {
		return
	}
	buyerName := displayName(s.profileNames(ctx, []string{buyerID}), buyerID)
	if err := s.Emails.SendNewConversation(ctx, owner.Email, owner.Name, buyerName, listing.Title); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("listing_id", listing.ID).Msg("messaging: owner notification failed")
	}
}

func (s *Service) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := s.DB.WithContext(ctx).Where("id = ?", conversationID).First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// RequireParticipant loads the conversation and checks userID takes part in it.
func (s *Service) RequireParticipant(ctx context.Context, conversationID, userID string) (*domain.Conversation, error) {
	conv, err := s.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

// SendMessage appends a message and mirrors it into the conversation's
// lastMessage fields in the same transaction. Blank text is ignored: it returns
// (nil, nil) and changes nothing.
func (s *Service) SendMessage(ctx context.Context, conversationID, senderID, text string) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if _, err := s.RequireParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		SentAt:         time.Now().UTC(),
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(msg).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create message: %w", err)
	}
	if err := tx.Model(&domain.Conversation{}).Where("id = ?", conversationID).Updates(map[string]interface{}{
		"last_message":    text,
		"last_message_at": msg.SentAt,
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("update conversation: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.Notify(ctx, conversationID); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("conversation_id", conversationID).Msg("messaging: notify failed")
		}
	}
	return msg, nil
}

// ListMessages returns the full history, oldest first.
func (s *Service) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	msgs := []domain.Message{}
	if err := s.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC").Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// SubscribeMessages starts a live subscription. The first update is the current
// history; a new full snapshot follows every change. Callers must Close it.
func (s *Service) SubscribeMessages(ctx context.Context, conversationID string) (*Subscription, error) {
	if s.Notifier == nil {
		return nil, ErrLiveUnavailable
	}
	ctx, cancel := context.WithCancel(ctx)
	// Watch before the first load so a message sent in between is not lost.
	signals, err := s.Notifier.Watch(ctx, conversationID)
	if err != nil {
		cancel()
		return nil, err
	}
	sub := newSubscription(cancel)
	go sub.run(ctx, conversationID, signals, func(ctx context.Context) ([]domain.Message, error) {
		return s.ListMessages(ctx, conversationID)
	})
	return sub, nil
}
