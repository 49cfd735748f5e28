package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopmate/shopmate-bot/internal/service"
	"github.com/shopmate/shopmate-bot/internal/utils"
)

// AnalyticsHandler serves the dashboard analytics snapshot.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetAnalytics handles GET /api/analytics. Reads always succeed; broken
// stores degrade to empty sections rather than failing the request.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	snap := h.analytics.Read(c.Request.Context())
	utils.Success(c, 200, "Analytics retrieved", snap)
}
