package service

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Sender delivers messages to a single chat. The Telegram implementation
// lives in the bot package; tests use fakes.
type Sender interface {
	SendText(chatID int64, text string) error
	SendPhoto(chatID int64, photoURL, caption string) error
}

// BroadcastPayload is the message fanned out to every recipient.
type BroadcastPayload struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
	Link  string `json:"link,omitempty"`
}

// BroadcastResult aggregates per-recipient delivery outcomes.
type BroadcastResult struct {
	SuccessCount int              `json:"successCount"`
	FailureCount int              `json:"failureCount"`
	Errors       map[int64]string `json:"errors,omitempty"`
}

// AllFailed reports whether no recipient received the message.
func (r *BroadcastResult) AllFailed() bool {
	return r.SuccessCount == 0 && r.FailureCount > 0
}

// Partial reports whether delivery succeeded for some recipients but not all.
func (r *BroadcastResult) Partial() bool {
	return r.SuccessCount > 0 && r.FailureCount > 0
}

// BroadcastService fans a message out to known chats.
type BroadcastService struct {
	sender Sender
}

// NewBroadcastService constructs a BroadcastService.
func NewBroadcastService(sender Sender) *BroadcastService {
	return &BroadcastService{sender: sender}
}

// Broadcast visits each recipient sequentially: image with caption when an
// image is present, plain text otherwise, then the link as a separate
// message. A failed recipient is recorded and never aborts delivery to the
// rest. Best effort only; there is no retry.
func (s *BroadcastService) Broadcast(ctx context.Context, payload *BroadcastPayload, recipients []int64) *BroadcastResult {
	result := &BroadcastResult{Errors: make(map[int64]string)}

	for _, chatID := range recipients {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("remaining", len(recipients)-result.SuccessCount-result.FailureCount).
				Msg("Broadcast cancelled")
			break
		}

		if err := s.deliver(chatID, payload); err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("Broadcast delivery failed")
			result.FailureCount++
			result.Errors[chatID] = err.Error()
			continue
		}
		result.SuccessCount++
	}

	log.Info().
		Int("success", result.SuccessCount).
		Int("failure", result.FailureCount).
		Msg("Broadcast finished")
	return result
}

func (s *BroadcastService) deliver(chatID int64, payload *BroadcastPayload) error {
	if payload.Image != "" {
		if err := s.sender.SendPhoto(chatID, payload.Image, payload.Text); err != nil {
			return err
		}
	} else {
		if err := s.sender.SendText(chatID, payload.Text); err != nil {
			return err
		}
	}

	if payload.Link != "" {
		return s.sender.SendText(chatID, payload.Link)
	}
	return nil
}
