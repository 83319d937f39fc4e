package messaging

import (
	"context"
	"time"

	"github.com/b2ygroup/conecta-pro/internal/domain"
)

const (
	missingListingTitle = "Anúncio não encontrado"
	removedUserName     = "Utilizador Removido"
)

type InboxListing struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type InboxParticipant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type InboxEntry struct {
	ID                   string           `json:"id"`
	Listing              InboxListing     `json:"listing"`
	OtherParticipant     InboxParticipant `json:"otherParticipant"`
	LastMessage          string           `json:"lastMessage"`
	LastMessageTimestamp time.Time        `json:"lastMessageTimestamp"`
}

// ListInbox returns every conversation userID takes part in, most recently
// active first, with the listing and the other participant resolved for display.
// Deleted listings and users still render with placeholder names.
func (s *Service) ListInbox(ctx context.Context, userID string) ([]InboxEntry, error) {
	var convs []domain.Conversation
	if err := s.DB.WithContext(ctx).
		Where("owner_id = ? OR buyer_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&convs).Error; err != nil {
		return nil, err
	}
	if len(convs) == 0 {
		return []InboxEntry{}, nil
	}

	listingIDs := make([]string, 0, len(convs))
	otherIDs := make([]string, 0, len(convs))
	for _, c := range convs {
		listingIDs = append(listingIDs, c.ListingID)
		otherIDs = append(otherIDs, c.OtherParticipant(userID))
	}

	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Select("id", "title", "image_url").Where("id IN ?", listingIDs).Find(&listings).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	names := s.profileNames(ctx, otherIDs)

	out := make([]InboxEntry, 0, len(convs))
	for _, c := range convs {
		entry := InboxEntry{
			ID:                   c.ID,
			LastMessage:          c.LastMessage,
			LastMessageTimestamp: c.LastMessageAt,
			Listing:              InboxListing{ID: c.ListingID, Title: missingListingTitle},
		}
		if l, ok := byID[c.ListingID]; ok {
			entry.Listing.Title = l.Title
			entry.Listing.ImageURL = l.ImageURL
		}
		other := c.OtherParticipant(userID)
		entry.OtherParticipant = InboxParticipant{ID: other, Name: displayName(names, other)}
		out = append(out, entry)
	}
	return out, nil
}

// profileNames maps user id to the best known display name; unknown ids are absent.
func (s *Service) profileNames(ctx context.Context, userIDs []string) map[string]string {
	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names
	}
	var accounts []domain.UserAccount
	if err := s.DB.WithContext(ctx).Select("user_id", "name").Where("user_id IN ?", userIDs).Find(&accounts).Error; err == nil {
		for _, a := range accounts {
			names[a.UserID] = a.Name
		}
	}
	var profiles []domain.UserProfile
	if err := s.DB.WithContext(ctx).Select("user_id", "name").Where("user_id IN ?", userIDs).Find(&profiles).Error; err == nil {
		for _, p := range profiles {
			if p.Name != "" || names[p.UserID] == "" {
				names[p.UserID] = p.Name
			}
		}
	}
	return names
}

func displayName(names map[string]string, userID string) string {
	if userID == "" {
		return removedUserName
	}
	if name := names[userID]; name != "" {
		return name
	}
	short := userID
	if len(short) > 5 {
		short = short[:5]
	}
	return "Utilizador " + short
}
