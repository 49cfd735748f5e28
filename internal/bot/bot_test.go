package bot

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lib/pq"

	"github.com/shopmate/shopmate-bot/internal/models"
	"github.com/shopmate/shopmate-bot/internal/repository"
	"github.com/shopmate/shopmate-bot/internal/service"
	"github.com/shopmate/shopmate-bot/internal/sse"
)

// fakeAPI records every Chattable the bot sends.
type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}

func (f *fakeAPI) texts() []string {
	var out []string
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

type botFixture struct {
	bot      *Bot
	api      *fakeAPI
	catalog  *repository.MemoryCatalogStore
	deals    *repository.MemoryDealStore
	queries  *repository.MemoryQueryStore
	counter  *repository.MemoryViewCounter
	users    *repository.MemoryUserStore
	sessions *repository.MemorySessionStore
}

func newBotFixture() *botFixture {
	f := &botFixture{
		api:      &fakeAPI{},
		catalog:  repository.NewMemoryCatalogStore(),
		deals:    repository.NewMemoryDealStore(),
		queries:  repository.NewMemoryQueryStore(),
		counter:  repository.NewMemoryViewCounter(),
		users:    repository.NewMemoryUserStore(),
		sessions: repository.NewMemorySessionStore(),
	}
	catalogSvc := service.NewCatalogService(f.catalog, f.deals)
	f.bot = New(
		f.api,
		catalogSvc,
		service.NewSearchService(catalogSvc),
		service.NewAnalyticsService(f.queries, repository.NewMemoryViewStore(), f.counter, &sse.NopNotifier{}),
		service.NewUserService(f.users),
		f.sessions,
		0, // no welcome delay in tests
		"help@shopmate.in",
	)
	return f
}

func (f *botFixture) seedProduct(t *testing.T, name string, keywords ...string) int64 {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Price:    999,
		MRP:      1999,
		BuyLink:  "https://amzn.example.com/x",
		Keywords: pq.StringArray(keywords),
	}
	if err := f.catalog.AppendProduct(context.Background(), p); err != nil {
		t.Fatalf("AppendProduct: %v", err)
	}
	return p.ID
}

func commandUpdate(chatID int64, cmd string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     cmd,
		Chat:     &tgbotapi.Chat{ID: chatID},
		From:     &tgbotapi.User{FirstName: "Asha", UserName: "asha"},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{FirstName: "Asha"},
	}}
}

func callbackUpdate(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func TestStartRegistersUserAndSendsWelcome(t *testing.T) {
	f := newBotFixture()

	f.bot.HandleUpdate(context.Background(), commandUpdate(100, "/start"))

	users, _ := f.users.List(context.Background())
	if len(users) != 1 || users[0].ChatID != 100 {
		t.Fatalf("registered users = %+v, want chat 100", users)
	}
	texts := f.api.texts()
	if len(texts) != 3 {
		t.Fatalf("sent %d messages, want 3-part welcome", len(texts))
	}
	if !strings.Contains(texts[0], "Asha") {
		t.Errorf("greeting %q should address the user by name", texts[0])
	}
}

func TestSearchRecordsQueryAndOffersResults(t *testing.T) {
	f := newBotFixture()
	for _, name := range []string{"Gaming Laptop A", "Gaming Laptop B", "Gaming Laptop C",
		"Gaming Laptop D", "Gaming Laptop E", "Gaming Laptop F"} {
		f.seedProduct(t, name, "gaming laptop")
	}

	f.bot.HandleUpdate(context.Background(), textUpdate(200, "laptop"))

	queries, _ := f.queries.ListQueries(context.Background())
	if len(queries) != 1 {
		t.Fatalf("recorded %d queries, want 1", len(queries))
	}
	if queries[0].Status != models.QueryStatusPending {
		t.Errorf("query status = %q, want pending until a selection happens", queries[0].Status)
	}

	if len(f.api.sent) != 1 {
		t.Fatalf("sent %d messages, want 1 result list", len(f.api.sent))
	}
	msg, ok := f.api.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T, want MessageConfig", f.api.sent[0])
	}
	keyboard, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("reply markup is %T, want inline keyboard", msg.ReplyMarkup)
	}
	if len(keyboard.InlineKeyboard) != 5 {
		t.Errorf("keyboard has %d rows, want results capped at 5", len(keyboard.InlineKeyboard))
	}

	sess, _ := f.sessions.Get(context.Background(), 200)
	if sess == nil {
		t.Fatal("no session stored after search")
	}
	if sess.QueryID != queries[0].ID {
		t.Errorf("session query id = %d, want %d", sess.QueryID, queries[0].ID)
	}
}

func TestSearchNoResultsStillLogsQuery(t *testing.T) {
	f := newBotFixture()
	f.seedProduct(t, "Running Shoes", "shoes")

	f.bot.HandleUpdate(context.Background(), textUpdate(201, "telescope"))

	queries, _ := f.queries.ListQueries(context.Background())
	if len(queries) != 1 {
		t.Fatalf("recorded %d queries, want 1 even without results", len(queries))
	}
	texts := f.api.texts()
	if len(texts) != 1 || !strings.Contains(texts[0], "couldn't find") {
		t.Errorf("reply = %v, want a not-found message", texts)
	}
	if sess, _ := f.sessions.Get(context.Background(), 201); sess != nil {
		t.Error("no session should be stored when there is nothing to select")
	}
}

func TestCallbackCountsViewAndCreditsQuery(t *testing.T) {
	f := newBotFixture()
	id := f.seedProduct(t, "Gaming Laptop", "gaming laptop")
	ctx := context.Background()

	f.bot.HandleUpdate(ctx, textUpdate(300, "laptop"))
	f.api.sent = nil

	f.bot.HandleUpdate(ctx, callbackUpdate(300, "product:1"))

	if len(f.api.requests) != 1 {
		t.Errorf("made %d API requests, want 1 callback ack", len(f.api.requests))
	}

	deltas, _ := f.counter.Deltas(ctx)
	if deltas[id] != 1 {
		t.Errorf("view delta = %d, want 1", deltas[id])
	}

	queries, _ := f.queries.ListQueries(ctx)
	if queries[0].Status != models.QueryStatusSuccess {
		t.Errorf("originating query status = %q, want success", queries[0].Status)
	}
	if sess, _ := f.sessions.Get(ctx, 300); sess != nil {
		t.Error("session should be cleared after the selection is credited")
	}

	if len(f.api.sent) != 1 {
		t.Fatalf("sent %d messages, want product details", len(f.api.sent))
	}
	if msg, ok := f.api.sent[0].(tgbotapi.MessageConfig); !ok || !strings.Contains(msg.Text, "Gaming Laptop") {
		t.Errorf("details message = %+v, want product name in text", f.api.sent[0])
	}
}

func TestCallbackForRemovedProduct(t *testing.T) {
	f := newBotFixture()
	ctx := context.Background()

	f.bot.HandleUpdate(ctx, callbackUpdate(400, "product:42"))

	// The view still counts; the product existed when the keyboard was sent.
	deltas, _ := f.counter.Deltas(ctx)
	if deltas[42] != 1 {
		t.Errorf("view delta = %d, want 1", deltas[42])
	}
	texts := f.api.texts()
	if len(texts) != 1 || !strings.Contains(texts[0], "no longer available") {
		t.Errorf("reply = %v, want a graceful unavailable message", texts)
	}
}

func TestCallbackMalformedDataIsIgnored(t *testing.T) {
	f := newBotFixture()

	f.bot.HandleUpdate(context.Background(), callbackUpdate(500, "product:abc"))

	if len(f.api.sent) != 0 {
		t.Errorf("sent %d messages for malformed callback data, want none", len(f.api.sent))
	}
}

func TestTodayWithNoDeals(t *testing.T) {
	f := newBotFixture()

	f.bot.HandleUpdate(context.Background(), commandUpdate(600, "/today"))

	texts := f.api.texts()
	if len(texts) != 1 || !strings.Contains(texts[0], "No deals") {
		t.Errorf("reply = %v, want an empty-deals message", texts)
	}
}

func TestTodaySendsEachDealWithPhoto(t *testing.T) {
	f := newBotFixture()
	f.deals.ReplaceDeals(context.Background(), []models.Deal{
		{Name: "Deal One", Price: 799, MRP: 1999, BuyLink: "https://amzn.example.com/1", Image: "https://img.example.com/1.jpg"},
		{Name: "Deal Two", Price: 499, MRP: 999, BuyLink: "https://amzn.example.com/2", Image: "https://img.example.com/2.jpg"},
	})

	f.bot.HandleUpdate(context.Background(), commandUpdate(700, "/today"))

	if len(f.api.sent) != 2 {
		t.Fatalf("sent %d messages, want one per deal", len(f.api.sent))
	}
	for i, c := range f.api.sent {
		photo, ok := c.(tgbotapi.PhotoConfig)
		if !ok {
			t.Fatalf("deal %d sent as %T, want PhotoConfig", i, c)
		}
		if !strings.Contains(photo.Caption, "% off") {
			t.Errorf("caption %q should include the discount", photo.Caption)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	f := newBotFixture()

	f.bot.HandleUpdate(context.Background(), commandUpdate(800, "/frobnicate"))

	texts := f.api.texts()
	if len(texts) != 1 || !strings.Contains(texts[0], "Unknown command") {
		t.Errorf("reply = %v, want unknown-command help", texts)
	}
}
