package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobboard/internal/bootstrap"
	"jobboard/internal/core/config"
	"jobboard/internal/core/logger"
	"jobboard/internal/core/server"
	"jobboard/internal/transport/http/handler"
	"jobboard/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	if cfg.App.Env != "local" && cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 依赖（失败直接 Fatal）
	c, closeDeps, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer closeDeps()

	h := cfg.App.HTTP
	r := router.NewAPIEngine(router.Deps{
		Log:          log,
		AllowOrigins: cfg.CORS.AllowOrigins,
		Cookie: handler.CookieOpts{
			Name:     cfg.Session.CookieName,
			Domain:   cfg.Session.Domain,
			Secure:   cfg.Session.Secure,
			SameSite: handler.ParseSameSite(cfg.Session.SameSite),
		},
		Limits: router.Limits{
			MaxConcurrent:  h.MaxConcurrent,
			MaxBodyBytes:   h.MaxBodyBytes,
			RequestTimeout: time.Duration(h.RequestTimeoutSec) * time.Second,
		},
		Ping:         c.Ping,
		Accounts:     c.Accounts,
		Jobs:         c.Jobs,
		Applications: c.Applications,
		Admin:        c.Admin,
	})

	// HTTP Server
	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := h.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(h.Port)
	log.Info("jobboard api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("metrics", baseURL+"/metrics"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("jobboard api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("jobboard api stopped gracefully")
}
