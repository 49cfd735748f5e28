package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/shopmate/shopmate-bot/internal/utils"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db      *sqlx.DB
	started time.Time
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// GetHealth handles GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "ok"
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		dbStatus = "unreachable"
	}

	utils.Success(c, 200, "OK", gin.H{
		"status":   "ok",
		"database": dbStatus,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	})
}
