package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender adapts the Telegram API to the broadcast service's Sender contract.
type Sender struct {
	api API
}

// NewSender wraps a Telegram API for broadcast delivery.
func NewSender(api API) *Sender {
	return &Sender{api: api}
}

// SendText delivers a plain text message to a chat.
func (s *Sender) SendText(chatID int64, text string) error {
	_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendPhoto delivers an image by URL with a caption to a chat.
func (s *Sender) SendPhoto(chatID int64, photoURL, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	_, err := s.api.Send(photo)
	return err
}
