package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/traymate/mealmenu/internal/logger"
)

// respondError writes a JSON error body carrying the request ID so a client
// report can be matched to the server log.
func respondError(c *gin.Context, status int, message string) {
	body := gin.H{"error": message}
	if id := logger.GetRequestID(c.Request.Context()); id != "" {
		body["request_id"] = id
	}
	c.AbortWithStatusJSON(status, body)
}
