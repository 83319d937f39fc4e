package messaging

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	msgsvc "github.com/b2ygroup/conecta-pro/internal/application/messaging"
	"github.com/b2ygroup/conecta-pro/internal/domain"
	"github.com/b2ygroup/conecta-pro/internal/middleware"
	"github.com/b2ygroup/conecta-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

const heartbeatInterval = 25 * time.Second

var statusMap = response.StatusMap{
	msgsvc.ErrMissingIDs:           fiber.StatusBadRequest,
	msgsvc.ErrSelfConversation:     fiber.StatusBadRequest,
	msgsvc.ErrListingNotFound:      fiber.StatusNotFound,
	msgsvc.ErrConversationNotFound: fiber.StatusNotFound,
	msgsvc.ErrNotParticipant:       fiber.StatusForbidden,
	msgsvc.ErrLiveUnavailable:      fiber.StatusServiceUnavailable,
}

type Handlers struct {
	Service *msgsvc.Service
}

type startRequest struct {
	ListingID string `json:"listing_id"`
}

type sendRequest struct {
	Text string `json:"text"`
}

// StartConversation POST /api/v1/conversations
func (h *Handlers) StartConversation(c *fiber.Ctx) error {
	var req startRequest
	if err := c.BodyParser(&req); err != nil || req.ListingID == "" {
		return response.Error(c, "listing_id is required", fiber.StatusBadRequest, nil)
	}
	conv, err := h.Service.StartForListing(c.UserContext(), req.ListingID, middleware.MustUser(c).UserID)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Conversation ready", conv, nil)
}

// Inbox GET /api/v1/conversations
func (h *Handlers) Inbox(c *fiber.Ctx) error {
	entries, err := h.Service.ListInbox(c.UserContext(), middleware.MustUser(c).UserID)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Conversations fetched successfully", entries, fiber.Map{"count": len(entries)})
}

// Messages GET /api/v1/conversations/:conversation_id/messages
func (h *Handlers) Messages(c *fiber.Ctx) error {
	id := c.Params("conversation_id")
	if _, err := h.Service.RequireParticipant(c.UserContext(), id, middleware.MustUser(c).UserID); err != nil {
		return response.FromError(c, err, statusMap)
	}
	msgs, err := h.Service.ListMessages(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Messages fetched successfully", msgs, nil)
}

// SendMessage POST /api/v1/conversations/:conversation_id/messages
func (h *Handlers) SendMessage(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	msg, err := h.Service.SendMessage(c.UserContext(), c.Params("conversation_id"), middleware.MustUser(c).UserID, req.Text)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	if msg == nil {
		return response.Success(c, "Empty message ignored", nil, nil)
	}
	return response.SuccessCreated(c, "Message sent", msg, nil)
}

// Stream GET /api/v1/conversations/:conversation_id/stream sends the full
// history as an SSE event on connect and again after every new message.
func (h *Handlers) Stream(c *fiber.Ctx) error {
	id := c.Params("conversation_id")
	if _, err := h.Service.RequireParticipant(c.UserContext(), id, middleware.MustUser(c).UserID); err != nil {
		return response.FromError(c, err, statusMap)
	}
	// The request context ends when the handler returns, the stream outlives it.
	sub, err := h.Service.SubscribeMessages(context.Background(), id)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Close()
		if err := writeSnapshots(w, sub.Updates(), heartbeatInterval); err != nil {
			log.Debug().Err(err).Str("conversation_id", id).Msg("stream: client gone")
		}
	}))
	return nil
}

// writeSnapshots blocks until updates is closed or a write fails.
func writeSnapshots(w *bufio.Writer, updates <-chan []domain.Message, heartbeat time.Duration) error {
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()
	for {
		select {
		case msgs, ok := <-updates:
			if !ok {
				return nil
			}
			b, err := json.Marshal(msgs)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", b); err != nil {
				return err
			}
		case <-ticker.C:
			if _, err := w.WriteString(": ping\n\n"); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
}
