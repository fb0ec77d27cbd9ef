package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"jobboard/internal/core/server"
	"jobboard/internal/service"
	"jobboard/internal/transport/http/ez"
	"jobboard/internal/transport/http/handler"
	mdw "jobboard/internal/transport/http/middleware"
)

type Limits struct {
	MaxConcurrent  int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

type Deps struct {
	Log          *zap.Logger
	AllowOrigins []string
	Cookie       handler.CookieOpts
	Limits       Limits
	// Ping 为 nil 时 /health 不探测数据库
	Ping func(context.Context) error
	// Registry 为 nil 时新建，并附带 go/process 采集器
	Registry *prometheus.Registry

	Accounts     *service.AccountService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Admin        *service.AdminService
}

func NewAPIEngine(d Deps) *gin.Engine {
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := mdw.NewMetrics(reg)

	r := server.NewRouter(d.Log, d.AllowOrigins)

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(d.Limits.MaxConcurrent),
		mdw.MaxBodyBytes(d.Limits.MaxBodyBytes),
		mdw.Timeout(d.Limits.RequestTimeout),
		metrics.Middleware(),
		mdw.AccessLog(d.Log),
		mdw.Session(d.Accounts, d.Cookie.Name),
	)

	// 探活 + 指标
	r.GET("/health", handler.Health(d.Ping, d.Log))
	r.GET("/metrics", metrics.Handler())

	var mods Registry
	mods.Register(
		handler.NewUserHandler(d.Accounts, d.Cookie),
		handler.NewJobHandler(d.Jobs),
		handler.NewApplicationHandler(d.Applications),
		handler.NewAdminHandler(d.Admin),
	)
	mods.MountAll(ez.New(&r.RouterGroup, d.Log))

	return r
}
