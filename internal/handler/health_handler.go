package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/catalog_api/internal/pubsub"
	"github.com/GTDGit/catalog_api/internal/sse"
	"github.com/GTDGit/catalog_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	db    *sqlx.DB
	redis *pubsub.RedisClient
	hub   *sse.Hub
}

// NewHealthHandler creates a new HealthHandler. redis may be nil when the
// event relay is disabled.
func NewHealthHandler(db *sqlx.DB, redis *pubsub.RedisClient, hub *sse.Hub) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, hub: hub}
}

// GetHealth responds with database and Redis status. It answers 503 when
// the database is unreachable.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	code := 200
	status := "healthy"
	dbStatus := "connected"
	if err := h.db.PingContext(ctx); err != nil {
		code = 503
		status = "unhealthy"
		dbStatus = "disconnected"
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "connected"
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "disconnected"
		}
	}

	utils.JSON(c, code, gin.H{
		"status":      status,
		"version":     "1.0.0",
		"uptime":      int(time.Since(startTime).Seconds()),
		"database":    dbStatus,
		"redis":       redisStatus,
		"sse_clients": h.hub.ClientCount(),
	})
}
