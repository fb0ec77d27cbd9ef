package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard/internal/access"
)

const KeyPrincipal = "principal"

// PrincipalResolver 令牌 -> 会话主体，无效返回 nil
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) *access.Principal
}

// SessionToken 优先取 cookie，其次 Authorization: Bearer
func SessionToken(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	ah := c.GetHeader("Authorization")
	if strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))
	}
	return ""
}

// Session 解析会话；失败按匿名继续，是否必须登录由各路由决定
func Session(r PrincipalResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := SessionToken(c, cookieName)
		if tok == "" {
			c.Next()
			return
		}
		if p := r.Resolve(c.Request.Context(), tok); p != nil {
			c.Set(KeyPrincipal, p)
			c.Request = c.Request.WithContext(access.WithPrincipal(c.Request.Context(), p))
		}
		c.Next()
	}
}
