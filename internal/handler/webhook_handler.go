package handler

import (
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/shopmate/shopmate-bot/internal/bot"
)

// WebhookHandler receives Telegram updates when the bot runs in webhook
// mode.
type WebhookHandler struct {
	bot *bot.Bot
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(b *bot.Bot) *WebhookHandler {
	return &WebhookHandler{bot: b}
}

// HandleTelegramUpdate handles POST /webhook/telegram. Telegram retries on
// non-200, so malformed payloads are acknowledged and dropped.
func (h *WebhookHandler) HandleTelegramUpdate(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Warn().Err(err).Msg("Malformed Telegram update")
		c.Status(200)
		return
	}

	h.bot.HandleUpdate(c.Request.Context(), update)
	c.Status(200)
}
