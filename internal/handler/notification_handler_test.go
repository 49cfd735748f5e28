package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shopmate/shopmate-bot/internal/models"
	"github.com/shopmate/shopmate-bot/internal/repository"
	"github.com/shopmate/shopmate-bot/internal/service"
)

// stubSender fails delivery for the chats listed in fail.
type stubSender struct {
	delivered []int64
	fail      map[int64]bool
}

func (s *stubSender) SendText(chatID int64, text string) error {
	if s.fail[chatID] {
		return errors.New("chat not found")
	}
	s.delivered = append(s.delivered, chatID)
	return nil
}

func (s *stubSender) SendPhoto(chatID int64, photoURL, caption string) error {
	return s.SendText(chatID, photoURL)
}

func newNotificationRouter(sender service.Sender, users *repository.MemoryUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(service.NewBroadcastService(sender), service.NewUserService(users))

	r := gin.New()
	r.POST("/api/send-message", h.SendNotification)
	return r
}

func TestSendNotificationFansOutToAllUsers(t *testing.T) {
	users := repository.NewMemoryUserStore()
	for _, id := range []int64{1, 2, 3} {
		users.Upsert(context.Background(), &models.User{ChatID: id})
	}
	sender := &stubSender{}
	r := newNotificationRouter(sender, users)

	w := doJSON(r, http.MethodPost, "/api/send-message", map[string]any{"text": "flash sale"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if len(sender.delivered) != 3 {
		t.Errorf("delivered to %d chats, want all 3 registered users", len(sender.delivered))
	}
}

func TestSendNotificationReportsPartialFailure(t *testing.T) {
	users := repository.NewMemoryUserStore()
	for _, id := range []int64{1, 2, 3} {
		users.Upsert(context.Background(), &models.User{ChatID: id})
	}
	sender := &stubSender{fail: map[int64]bool{2: true}}
	r := newNotificationRouter(sender, users)

	w := doJSON(r, http.MethodPost, "/api/send-message", map[string]any{"text": "flash sale"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with partial result; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Data    struct {
			SuccessCount int `json:"successCount"`
			FailureCount int `json:"failureCount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.SuccessCount != 2 || resp.Data.FailureCount != 1 {
		t.Errorf("result = %+v, want 2 delivered and 1 failed", resp.Data)
	}
	if resp.Message != "Broadcast partially delivered" {
		t.Errorf("message = %q, want partial-delivery wording", resp.Message)
	}
}

func TestSendNotificationExplicitRecipients(t *testing.T) {
	users := repository.NewMemoryUserStore()
	users.Upsert(context.Background(), &models.User{ChatID: 1})
	sender := &stubSender{}
	r := newNotificationRouter(sender, users)

	w := doJSON(r, http.MethodPost, "/api/send-message",
		map[string]any{"text": "hi", "chatIds": []int64{42}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(sender.delivered) != 1 || sender.delivered[0] != 42 {
		t.Errorf("delivered to %v, want exactly chat 42", sender.delivered)
	}
}

func TestSendNotificationRejectsEmptyText(t *testing.T) {
	r := newNotificationRouter(&stubSender{}, repository.NewMemoryUserStore())

	w := doJSON(r, http.MethodPost, "/api/send-message", map[string]any{"image": "https://x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSendNotificationNoRecipients(t *testing.T) {
	r := newNotificationRouter(&stubSender{}, repository.NewMemoryUserStore())

	w := doJSON(r, http.MethodPost, "/api/send-message", map[string]any{"text": "hi"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 when nobody is registered", w.Code)
	}
}
