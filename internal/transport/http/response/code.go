package response

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"jobboard/internal/domain"
)

// kindStatus 业务错误分类 -> HTTP 状态码；重复数据按客户端错误处理
var kindStatus = map[domain.Kind]int{
	domain.KindValidation: http.StatusBadRequest,
	domain.KindAuth:       http.StatusUnauthorized,
	domain.KindForbidden:  http.StatusForbidden,
	domain.KindNotFound:   http.StatusNotFound,
	domain.KindConflict:   http.StatusBadRequest,
}

const msgInternal = "internal server error"

// StatusOf 非业务错误一律 500
func StatusOf(err error) int {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	if s, ok := kindStatus[domain.KindOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
