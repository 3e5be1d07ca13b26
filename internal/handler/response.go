package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Total   *int64 `json:"total,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Data:    data,
	})
}

// OkPage is Ok for paginated listings; total is always present.
func OkPage(c *gin.Context, data any, total int64) {
	c.JSON(http.StatusOK, apiResponse{
		Success: true,
		Data:    data,
		Total:   &total,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{
		Success: false,
		Error:   message,
	})
}
