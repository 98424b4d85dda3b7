package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"taskboard/internal/cache"
	"taskboard/internal/db"
)

// HealthHandler reports service liveness and dependency reachability.
type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Client
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(gormDB *gorm.DB, cacheClient *cache.Client) *HealthHandler {
	return &HealthHandler{db: gormDB, cache: cacheClient}
}

// HealthResponse describes the state of the service and its collaborators.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Health godoc
// @Summary Service health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	resp := HealthResponse{Status: "ok", Database: "up", Cache: "up"}

	if err := db.Ping(c.Request().Context(), h.db); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
	}
	// The cache is advisory; it degrades the report but never the API.
	if err := h.cache.Ping(c.Request().Context()); err != nil {
		resp.Cache = "down"
	}

	return c.JSON(http.StatusOK, resp)
}
