package response

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard/internal/domain"
)

type ErrorBody struct {
	Error string `json:"error"`
}

// Message 确认类响应；User 仅登录/注册返回
type Message struct {
	Message string                `json:"message"`
	User    *domain.PublicProfile `json:"user,omitempty"`
}

func Msg(msg string) Message { return Message{Message: msg} }

func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg})
}

// Fail 业务错误原样返回 Msg；其他错误只记日志，对外统一文案
func Fail(c *gin.Context, log *zap.Logger, err error) {
	status := StatusOf(err)
	var de *domain.Error
	switch {
	case errors.As(err, &de):
		Abort(c, status, de.Msg)
	case status == http.StatusRequestEntityTooLarge:
		Abort(c, status, "request body too large")
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Abort(c, status, msgInternal)
	}
}
