package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"videocatalog/internal/repository"
	"videocatalog/internal/service"
)

const (
	msgNotFound    = "Video not found"
	msgUnavailable = "DB not available"
)

type CardHandler struct {
	Query  *service.CatalogQueryService
	Detail *service.CardDetailService
	Logger *zap.Logger
}

func (h *CardHandler) Register(r *gin.Engine) {
	group := r.Group("/api/cards")
	group.GET("", h.listCards)
	group.GET("/top", h.topCard)
	group.GET("/:slug", h.getCard)
}

// @Summary List cards
// @Tags cards
// @Param category query string false "category substring, or all"
// @Param search query string false "title or category substring"
// @Param limit query int false "page size (1-100, default 20)"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Failure 503 {object} apiResponse
// @Router /api/cards [get]
func (h *CardHandler) listCards(c *gin.Context) {
	if h.Query == nil || h.Query.Repo == nil {
		Error(c, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	page, err := h.Query.ListCards(c.Request.Context(), service.ListCardsOptions{
		Category: c.DefaultQuery("category", service.CategoryAll),
		Search:   c.Query("search"),
		Limit:    intQuery(c, "limit", service.DefaultPageLimit),
		Offset:   intQuery(c, "offset", 0),
	})
	if err != nil {
		h.fail(c, "list cards failed", err)
		return
	}
	OkPage(c, page.Items, page.Total)
}

// @Summary Most viewed card
// @Tags cards
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/cards/top [get]
func (h *CardHandler) topCard(c *gin.Context) {
	if h.Query == nil || h.Query.Repo == nil {
		Error(c, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	top, err := h.Query.TopCard(c.Request.Context())
	if err != nil {
		h.fail(c, "top card failed", err)
		return
	}
	if top == nil {
		Error(c, http.StatusNotFound, msgNotFound)
		return
	}
	Ok(c, top)
}

// @Summary Card detail with related cards
// @Tags cards
// @Param slug path string true "card slug"
// @Param my_slug query string false "alternate slug"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Failure 503 {object} apiResponse
// @Router /api/cards/{slug} [get]
func (h *CardHandler) getCard(c *gin.Context) {
	if h.Detail == nil || h.Detail.Repo == nil {
		Error(c, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	view, err := h.Detail.GetCardDetail(c.Request.Context(), c.Param("slug"), c.Query("my_slug"))
	if err != nil {
		h.fail(c, "card detail failed", err)
		return
	}
	Ok(c, view)
}

func (h *CardHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case service.IsNotFound(err):
		Error(c, http.StatusNotFound, msgNotFound)
		return
	case errors.Is(err, repository.ErrUnavailable):
		Error(c, http.StatusServiceUnavailable, msgUnavailable)
	default:
		Error(c, http.StatusInternalServerError, err.Error())
	}
	if h.Logger != nil {
		h.Logger.Warn(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
}

// intQuery falls back to def when the parameter is missing or not a number.
func intQuery(c *gin.Context, key string, def int) int {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}
