package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/search"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports the state of the service's dependencies.
type HealthHandler struct {
	db    *gorm.DB
	queue services.TaskQueue
	index search.Index
}

func NewHealthHandler(db *gorm.DB, queue services.TaskQueue, index search.Index) *HealthHandler {
	return &HealthHandler{db: db, queue: queue, index: index}
}

// CheckHealth returns the health status of all subsystems.
// GET /api/health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "error: " + err.Error()
	}
	if dbStatus != "ok" {
		overall = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	queueMode := "sync"
	if h.queue != nil && h.queue.IsAsync() {
		queueMode = "async (Redis)"
	}

	searchMode := "database"
	if h.index != nil && h.index.Enabled() {
		searchMode = "elasticsearch"
	}

	c.JSON(code, gin.H{
		"success": code == http.StatusOK,
		"status":  code,
		"message": overall,
		"data": gin.H{
			"service": "teamup",
			"components": gin.H{
				"database":   dbStatus,
				"queue_mode": queueMode,
				"search":     searchMode,
			},
		},
	})
}
