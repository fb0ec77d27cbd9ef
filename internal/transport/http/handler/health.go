package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "jobboard/internal/transport/http/response"
)

// Health 就绪探测：数据库不可用返回 503
func Health(ping func(context.Context) error, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				log.Warn("health check failed", zap.Error(err))
				resp.Abort(c, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}
