package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"jobboard/internal/domain"
)

// Ping 就绪探测，最多等 2 秒
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return errors.Wrap(db.PingContext(ctx), "db ping")
}

// Migrate 建表/补索引
func Migrate(db *gorm.DB) error {
	return errors.Wrap(
		db.AutoMigrate(&domain.Account{}, &domain.Job{}, &domain.Application{}),
		"automigrate",
	)
}
