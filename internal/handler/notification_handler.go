package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopmate/shopmate-bot/internal/service"
	"github.com/shopmate/shopmate-bot/internal/utils"
)

// NotificationHandler triggers broadcast fan-out from the dashboard. Both
// POST /api/send-message and POST /admin/send-notification land here; the
// dashboard pages call both routes.
type NotificationHandler struct {
	broadcast *service.BroadcastService
	users     *service.UserService
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(broadcast *service.BroadcastService, users *service.UserService) *NotificationHandler {
	return &NotificationHandler{broadcast: broadcast, users: users}
}

type sendNotificationRequest struct {
	Text    string  `json:"text"`
	Image   string  `json:"image"`
	Link    string  `json:"link"`
	ChatIDs []int64 `json:"chatIds"`
}

// SendNotification broadcasts a message to the given chats, or to every
// registered user when no chat ids are posted. Partial failure is reported
// explicitly, never collapsed into a plain error.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req sendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if req.Text == "" {
		utils.Error(c, 400, "INVALID_REQUEST", "text is required")
		return
	}

	recipients := req.ChatIDs
	if len(recipients) == 0 {
		ids, err := h.users.ListChatIDs(c.Request.Context())
		if err != nil {
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load recipients")
			return
		}
		recipients = ids
	}
	if len(recipients) == 0 {
		utils.Error(c, 400, "NO_RECIPIENTS", "No registered users to notify")
		return
	}

	payload := &service.BroadcastPayload{Text: req.Text, Image: req.Image, Link: req.Link}
	result := h.broadcast.Broadcast(c.Request.Context(), payload, recipients)

	status := "all delivered"
	switch {
	case result.AllFailed():
		status = "all failed"
	case result.Partial():
		status = "partially delivered"
	}

	utils.Success(c, 200, "Broadcast "+status, result)
}
