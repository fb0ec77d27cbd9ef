// Package access 是请求级的授权判定：谁在调用（Principal）以及三个组合谓词。
// 所有 service 在做任何写操作或按角色收窄读范围之前先判定，失败即短路。
package access

import (
	"context"

	"jobboard/internal/domain"
)

// Principal 已解析的会话主体；nil 表示匿名
type Principal struct {
	AccountID string
	Role      domain.Role
	SessionID string
}

func IsAuthenticated(p *Principal) bool { return p != nil && p.AccountID != "" }

func HasRole(p *Principal, r domain.Role) bool { return IsAuthenticated(p) && p.Role == r }

// Require 组合检查：未登录 -> Auth，角色不符 -> Forbidden
func Require(p *Principal, r domain.Role, forbiddenMsg string) error {
	if !IsAuthenticated(p) {
		return domain.Unauthorized("Please login first")
	}
	if p.Role != r {
		return domain.Forbidden(forbiddenMsg)
	}
	return nil
}

// Operator 运维 CLI 使用的管理员主体
func Operator() *Principal {
	return &Principal{AccountID: "operator", Role: domain.RoleAdmin}
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxKey{}).(*Principal)
	return p
}
