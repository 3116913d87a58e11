package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const healthTimeout = 2 * time.Second

// HealthHandler handles GET /api/health. The store must be reachable for the
// service to report healthy; Redis powers the optional event bridge and is
// reported but advisory.
type HealthHandler struct {
	db    *sql.DB
	redis *redis.Client
}

func NewHealthHandler(db *sql.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis,omitempty"`
}

func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Status: "healthy", Database: "connected"}

	if _, err := h.db.ExecContext(ctx, "SELECT 1"); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	if h.redis != nil {
		resp.Redis = "connected"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Redis = "disconnected"
		}
	}

	return c.JSON(http.StatusOK, resp)
}
