// Package ez 是 gin 的一行注册封装：绑定入参、取会话主体、统一错误映射。
package ez

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard/internal/access"
	"jobboard/internal/domain"
	resp "jobboard/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, log *zap.Logger) EZ { return EZ{g: g, log: log} }

// Group 子路由沿用同一个 logger
func (e EZ) Group(path string, h ...gin.HandlerFunc) EZ {
	return EZ{g: e.g.Group(path, h...), log: e.log}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// Empty 无入参/无出参时使用
type Empty struct{}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "PATCH" | "DELETE"
	Path    string // 例："/users/login"、"/jobs/:id/status"
	Binder  Binder
	Auth    bool // 要求已登录；角色/归属由 service 判定
	Status  int  // 成功状态码，默认 200
	Handler func(c *gin.Context, p *access.Principal, in *I) (O, error)
}

// Principal 鉴权中间件写入的会话主体；匿名返回 nil
func Principal(c *gin.Context) *access.Principal {
	return access.FromContext(c.Request.Context())
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 登录检查
		p := Principal(c)
		if a.Auth && !access.IsAuthenticated(p) {
			resp.Abort(c, http.StatusUnauthorized, "Please login first")
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			resp.Fail(c, e.log, bindError(bindErr))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, p, &in)
		if err != nil {
			resp.Fail(c, e.log, err)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// bindError 枚举校验错误原样透出，其余解析错误统一为 400
func bindError(err error) error {
	var mbe *http.MaxBytesError
	if domain.KindOf(err) != 0 || errors.As(err, &mbe) {
		return err
	}
	return domain.Validation("invalid request body")
}
