// Package bootstrap 按配置组装数据库、会话存储、缓存与各 service，两个二进制共用。
package bootstrap

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobboard/internal/core/auth"
	"jobboard/internal/core/cache"
	"jobboard/internal/core/config"
	"jobboard/internal/core/database"
	"jobboard/internal/repo"
	"jobboard/internal/service"
)

type Container struct {
	DB       *gorm.DB
	Redis    *redis.Client // 未配置时为 nil
	Sessions auth.SessionStore
	JWT      *auth.JWTer

	Accounts     *service.AccountService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Admin        *service.AdminService
}

// Ping 数据库就绪探测
func (c *Container) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return errors.Wrap(err, "sql handle")
	}
	return database.Ping(ctx, sqlDB)
}

func OpenDB(cfg config.DB) (*gorm.DB, error) {
	return database.NewGorm(database.Opts{
		Driver:             cfg.Driver,
		DSN:                cfg.DSN,
		Username:           cfg.Username,
		Password:           cfg.Password,
		MaxOpenConns:       cfg.MaxOpenConns,
		MaxIdleConns:       cfg.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.ConnMaxLifetimeMin,
		LogLevel:           cfg.LogLevel,
	})
}

// New ctx 结束时停止内存会话清理；返回的 cleanup 关闭连接
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, func(), error) {
	db, err := OpenDB(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	log.Info("database connected",
		zap.String("driver", cfg.DB.Driver),
		zap.String("dsn", database.MaskDSN(cfg.DB.DSN)),
	)
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, nil, err
		}
		log.Info("automigrate done")
	}

	c := &Container{
		DB: db,
		JWT: &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		},
	}

	var profileCache *cache.Cache
	if cfg.Redis.Addr != "" {
		c.Redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			_ = c.Redis.Close()
			return nil, nil, errors.Wrapf(err, "redis ping %s", cfg.Redis.Addr)
		}
		c.Sessions = auth.NewRedisSessionStore(c.Redis)
		profileCache = cache.NewWithClient(c.Redis)
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	} else {
		mem := auth.NewMemorySessionStore()
		go sweep(ctx, mem, time.Minute)
		c.Sessions = mem
		log.Warn("redis not configured: in-process sessions, profile cache disabled")
	}

	accounts := repo.NewAccountRepo(db)
	jobs := repo.NewJobRepo(db)
	apps := repo.NewApplicationRepo(db)
	profiles := service.NewProfiles(accounts, profileCache, time.Duration(cfg.Redis.ProfileTTLSec)*time.Second)

	c.Accounts = service.NewAccountService(accounts, c.Sessions, c.JWT, log.Named("account"))
	c.Jobs = service.NewJobService(jobs, profiles, log.Named("job"))
	c.Applications = service.NewApplicationService(apps, jobs, profiles, log.Named("application"))
	c.Admin = service.NewAdminService(jobs, apps, profiles, log.Named("admin"))

	cleanup := func() {
		if c.Redis != nil {
			_ = c.Redis.Close()
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return c, cleanup, nil
}

func sweep(ctx context.Context, s *auth.MemorySessionStore, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
