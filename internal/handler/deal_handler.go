package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopmate/shopmate-bot/internal/models"
	"github.com/shopmate/shopmate-bot/internal/service"
	"github.com/shopmate/shopmate-bot/internal/utils"
)

// DealHandler handles the today's-deals HTTP endpoints.
type DealHandler struct {
	catalog *service.CatalogService
}

// NewDealHandler constructs a DealHandler.
func NewDealHandler(catalog *service.CatalogService) *DealHandler {
	return &DealHandler{catalog: catalog}
}

// ListDeals handles GET /api/today-deals
func (h *DealHandler) ListDeals(c *gin.Context) {
	deals := h.catalog.ListDeals(c.Request.Context())
	utils.Success(c, 200, "Deals retrieved", deals)
}

// ReplaceDeals handles POST /api/today-deals. The posted list replaces the
// stored one wholesale.
func (h *DealHandler) ReplaceDeals(c *gin.Context) {
	var deals []models.Deal
	if err := c.ShouldBindJSON(&deals); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.catalog.ReplaceDeals(c.Request.Context(), deals); err != nil {
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must not") {
			utils.Error(c, 400, "INVALID_REQUEST", err.Error())
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update deals")
		return
	}

	utils.Success(c, 200, "Deals updated", gin.H{"count": len(deals)})
}
