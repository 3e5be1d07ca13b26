package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"videocatalog/internal/repository"
)

type HealthHandler struct {
	Store        repository.CardRepository
	MaxVisibleID int64
	Location     *time.Location
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
	r.GET("/api/health", h.status)
}

// @Summary Health check
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Readiness check
// @Tags health
// @Success 200 {object} map[string]string
// @Router /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_missing"})
		return
	}
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// @Summary Catalog status
// @Tags health
// @Success 200 {object} map[string]any
// @Router /api/health [get]
func (h *HealthHandler) status(c *gin.Context) {
	connected := h.Store != nil && h.Store.Ping(c.Request.Context()) == nil
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	filter := "none"
	if h.MaxVisibleID > 0 {
		filter = fmt.Sprintf("id <= %d", h.MaxVisibleID)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"dbConnected": connected,
		"time":        time.Now().In(loc).Format(time.RFC3339),
		"filter":      filter,
		"sort":        "number_views DESC, id ASC",
	})
}
