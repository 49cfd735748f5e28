package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/shopmate/shopmate-bot/internal/cache"
	"github.com/shopmate/shopmate-bot/internal/models"
	"github.com/shopmate/shopmate-bot/internal/service"
)

// callbackPrefix tags selection callback data: "product:<id>".
const callbackPrefix = "product:"

// Bot routes Telegram updates to the catalog, search, and analytics
// services. Each chat is independent; the only shared state lives in the
// stores the services own.
type Bot struct {
	api       API
	catalog   *service.CatalogService
	search    *service.SearchService
	analytics *service.AnalyticsService
	users     *service.UserService
	sessions  SessionStore

	welcomeDelay time.Duration
	helpContact  string
}

// New constructs a Bot.
func New(
	api API,
	catalog *service.CatalogService,
	search *service.SearchService,
	analytics *service.AnalyticsService,
	users *service.UserService,
	sessions SessionStore,
	welcomeDelay time.Duration,
	helpContact string,
) *Bot {
	return &Bot{
		api:          api,
		catalog:      catalog,
		search:       search,
		analytics:    analytics,
		users:        users,
		sessions:     sessions,
		welcomeDelay: welcomeDelay,
		helpContact:  helpContact,
	}
}

// Run consumes updates via long polling until the context is cancelled.
// Webhook deployments skip Run and feed HandleUpdate from the HTTP handler.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Info().Msg("Bot polling started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Bot polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one inbound update. Errors are logged, never
// propagated: a failed interaction must not take the process down.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil && strings.TrimSpace(update.Message.Text) != "":
		b.handleSearch(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.reply(msg.Chat.ID, fmt.Sprintf("Need help? Reach us at %s\n\nType a product name to search, or /today for today's deals.", b.helpContact))
	case "today":
		b.handleToday(ctx, msg.Chat.ID)
	default:
		b.reply(msg.Chat.ID, "Unknown command. Try /start, /help, /today, or just type a product name.")
	}
}

// handleStart registers the chat and sends the onboarding sequence in order
// with a fixed delay between messages.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	user := &models.User{ChatID: msg.Chat.ID}
	if msg.From != nil {
		user.FirstName = msg.From.FirstName
		user.LastName = msg.From.LastName
		user.Username = msg.From.UserName
	}
	if err := b.users.Register(ctx, user); err != nil {
		log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to register user")
	}

	welcome := []string{
		fmt.Sprintf("Hi %s, welcome to ShopMate! 🛍", user.FirstName),
		"Type any product name and I'll find the best matching deals from Amazon, Flipkart, Meesho and Shopsy.",
		"Send /today to see today's hand-picked deals.",
	}
	for i, text := range welcome {
		if i > 0 {
			select {
			case <-time.After(b.welcomeDelay):
			case <-ctx.Done():
				return
			}
		}
		b.reply(msg.Chat.ID, text)
	}
}

// handleToday sends each current deal as its own message. One failed send is
// logged and never blocks the deals after it.
func (b *Bot) handleToday(ctx context.Context, chatID int64) {
	deals := b.catalog.ListDeals(ctx)
	if len(deals) == 0 {
		b.reply(chatID, "No deals available right now. Check back later!")
		return
	}

	for i := range deals {
		if err := b.sendDeal(chatID, &deals[i]); err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Str("deal", deals[i].Name).Msg("Failed to send deal")
		}
	}
}

func (b *Bot) sendDeal(chatID int64, deal *models.Deal) error {
	caption := fmt.Sprintf("🔥 %s\n%s\n\n💰 ₹%.0f (MRP ₹%.0f) — %d%% off\n⭐ %.1f",
		deal.Name, deal.Description, deal.Price, deal.MRP, deal.DiscountPercent(), deal.Rating)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🛒 Buy Now", deal.BuyLink),
		),
	)

	if deal.Image != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(deal.Image))
		photo.Caption = caption
		photo.ReplyMarkup = keyboard
		if _, err := b.api.Send(photo); err == nil {
			return nil
		}
		// Image delivery can fail on a dead URL; fall through to plain text.
	}

	text := tgbotapi.NewMessage(chatID, caption)
	text.ReplyMarkup = keyboard
	_, err := b.api.Send(text)
	return err
}

// handleSearch logs the query, runs the matcher, and presents up to five
// selectable results.
func (b *Bot) handleSearch(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	chatID := msg.Chat.ID

	queryID, err := b.analytics.RecordQuery(ctx, chatID, text)
	if err != nil {
		// Analytics is best effort; the search itself still runs.
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to record query")
	}

	results := b.search.Search(ctx, text)
	if len(results) == 0 {
		b.reply(chatID, fmt.Sprintf("Sorry, I couldn't find anything for \"%s\". Try a shorter or more common name.", text))
		return
	}

	if err := b.sessions.Put(ctx, &cache.Session{ChatID: chatID, QueryID: queryID, Query: text}); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to store chat session")
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(results))
	for _, p := range results {
		label := fmt.Sprintf("%s — ₹%.0f", p.Name, p.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackPrefix+strconv.FormatInt(p.ID, 10)),
		))
	}

	reply := tgbotapi.NewMessage(chatID, "Here's what I found, pick one:")
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(reply); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send search results")
	}
}

// handleCallback resolves a product selection: count the view, credit the
// originating query, then show details. A product deleted since the keyboard
// was sent is answered with "not found", never an error.
func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		log.Warn().Err(err).Msg("Failed to ack callback")
	}

	if q.Message == nil || !strings.HasPrefix(q.Data, callbackPrefix) {
		return
	}
	chatID := q.Message.Chat.ID

	productID, err := strconv.ParseInt(strings.TrimPrefix(q.Data, callbackPrefix), 10, 64)
	if err != nil {
		log.Warn().Str("data", q.Data).Msg("Malformed callback data")
		return
	}

	if err := b.analytics.RecordView(ctx, productID); err != nil {
		log.Error().Err(err).Int64("product_id", productID).Msg("Failed to record view")
	}

	if sess, err := b.sessions.Get(ctx, chatID); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to load chat session")
	} else if sess != nil {
		if err := b.analytics.MarkQuerySuccess(ctx, sess.QueryID); err != nil {
			log.Error().Err(err).Int64("query_id", sess.QueryID).Msg("Failed to mark query success")
		}
		if err := b.sessions.Delete(ctx, chatID); err != nil {
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to clear chat session")
		}
	}

	product, err := b.catalog.GetProduct(ctx, productID)
	if err != nil {
		b.reply(chatID, "Sorry, that product is no longer available.")
		return
	}
	b.sendProductDetails(chatID, product)
}

func (b *Bot) sendProductDetails(chatID int64, p *models.Product) {
	text := fmt.Sprintf("%s\n%s\n\n💰 ₹%.0f (MRP ₹%.0f)\n⭐ %.1f",
		p.Name, p.Description, p.Price, p.MRP, p.Rating)

	buttons := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonURL("🛒 Buy Now", p.BuyLink),
	}
	if p.ProductLink != "" {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL("🔗 View Product", p.ProductLink))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))

	if p.Image != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(p.Image))
		photo.Caption = text
		photo.ReplyMarkup = keyboard
		if _, err := b.api.Send(photo); err == nil {
			return
		}
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send product details")
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}
