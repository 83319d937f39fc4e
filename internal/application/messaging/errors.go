package messaging

import "errors"

var (
	ErrMissingIDs           = errors.New("listing_id, owner_id and buyer_id are required")
	ErrSelfConversation     = errors.New("Owner cannot start a conversation with themselves")
	ErrListingNotFound      = errors.New("Listing not found")
	ErrConversationNotFound = errors.New("Conversation not found")
	ErrNotParticipant       = errors.New("User is not a participant of this conversation")
	ErrLiveUnavailable      = errors.New("Live updates are not configured")
)
