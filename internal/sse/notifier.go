package sse

import (
	"time"

	"github.com/shopmate/shopmate-bot/internal/models"
)

// ActivityNotifier is the interface services use to emit dashboard events.
type ActivityNotifier interface {
	NotifyQueryRecorded(rec *models.QueryRecord)
	NotifyProductViewed(productID int64)
}

// HubNotifier implements ActivityNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyQueryRecorded(rec *models.QueryRecord) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&ActivityEvent{
		Event:     EventQueryRecorded,
		ChatID:    rec.ChatID,
		QueryID:   rec.ID,
		Query:     rec.Query,
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyProductViewed(productID int64) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&ActivityEvent{
		Event:     EventProductViewed,
		ProductID: productID,
		Timestamp: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifyQueryRecorded(rec *models.QueryRecord) {}
func (n *NopNotifier) NotifyProductViewed(productID int64)         {}
