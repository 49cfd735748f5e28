package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shopmate/shopmate-bot/internal/cache"
)

// API is the slice of the Telegram SDK the bot uses. *tgbotapi.BotAPI
// satisfies it; tests substitute a fake.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// SessionStore keeps per-chat conversation state between a search and the
// selection that follows it.
type SessionStore interface {
	Put(ctx context.Context, sess *cache.Session) error
	Get(ctx context.Context, chatID int64) (*cache.Session, error)
	Delete(ctx context.Context, chatID int64) error
}
