package repo

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"jobboard/internal/domain"
)

// wrapWrite 唯一冲突统一成 domain.ErrDuplicate，其余错误带上下文
func wrapWrite(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDupKey(err) {
		return errors.Wrap(domain.ErrDuplicate, op)
	}
	return errors.Wrap(err, op)
}

// isDupKey 兜底：驱动未开启错误翻译时按文本判断
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// first 查不到返回 (nil, nil)
func first[T any](tx *gorm.DB, op string, query string, args ...any) (*T, error) {
	var out T
	err := tx.Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return &out, nil
}
