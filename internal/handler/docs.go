package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Video Catalog Service

Read-only catalog of video cards with per-card detail and related cards.
Only cards inside the visibility window (id <= catalog.max_visible_id) are
ever returned.

## Routes

- GET /healthz
- GET /readyz
- GET /api/health
- GET /swagger/index.html
- GET /api/cards?category=&search=&limit=&offset=
- GET /api/cards/top
- GET /api/cards/:slug?my_slug=
- GET /images/* (when server.static_dir is set)

## Responses

Success: {"success": true, "data": ..., "total": n}
Failure: {"success": false, "error": "..."}

404 means the slug matched no visible card, 503 means the database could
not be reached. Invalid limit/offset values are clamped, never rejected.
`)
	})
}
