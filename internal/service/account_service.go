package service

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"jobboard/internal/access"
	"jobboard/internal/core/auth"
	"jobboard/internal/domain"
	"jobboard/pkg/utils"
)

type RegisterInput struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type LoginInput struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// LoginResult Token 由传输层写入 cookie
type LoginResult struct {
	User      domain.PublicProfile
	Token     string
	ExpiresAt time.Time
}

type AccountService struct {
	accounts domain.AccountRepository
	sessions auth.SessionStore
	jwt      *auth.JWTer
	log      *zap.Logger
}

func NewAccountService(accounts domain.AccountRepository, sessions auth.SessionStore, jwt *auth.JWTer, log *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, sessions: sessions, jwt: jwt, log: log}
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.PublicProfile, error) {
	if !in.Role.Valid() {
		return nil, domain.Validation("Invalid role type")
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Validation("username, email and password are required")
	}
	if a, err := s.accounts.FindByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if a != nil {
		return nil, domain.Conflict("Email already registered")
	}
	if a, err := s.accounts.FindByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if a != nil {
		return nil, domain.Conflict("A user with the given username is already registered")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	a := &domain.Account{
		ID:           utils.NewID(),
		Username:     in.Username,
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("Email already registered")
		}
		return nil, err
	}
	s.log.Info("account registered", zap.String("id", a.ID), zap.String("role", string(a.Role)))
	return &domain.PublicProfile{Username: a.Username, Email: a.Email, Role: a.Role}, nil
}

// Authenticate 校验凭据并建立服务端会话；role 非空时必须与账号角色一致
func (s *AccountService) Authenticate(ctx context.Context, in LoginInput) (*LoginResult, error) {
	a, err := s.accounts.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if a == nil || !utils.CheckPassword(in.Password, a.PasswordHash) {
		return nil, domain.Unauthorized("Invalid username or password")
	}
	if in.Role != "" && in.Role != a.Role {
		return nil, domain.Unauthorized("Role mismatch")
	}

	sess, err := s.sessions.Create(ctx, a.ID, string(a.Role), s.jwt.TTL)
	if err != nil {
		return nil, errors.Wrap(err, "create session")
	}
	token, exp, err := s.jwt.Issue(a.ID, string(a.Role), sess.ID)
	if err != nil {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, err
	}
	return &LoginResult{
		User:      domain.PublicProfile{Username: a.Username, Email: a.Email, Role: a.Role},
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

// Resolve 令牌 -> 主体；签名、过期、会话已注销都视为匿名
func (s *AccountService) Resolve(ctx context.Context, token string) *access.Principal {
	if token == "" {
		return nil
	}
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil
	}
	sess, err := s.sessions.Get(ctx, claims.SID)
	if err != nil {
		s.log.Warn("session lookup failed", zap.Error(err))
		return nil
	}
	if sess == nil || sess.AccountID != claims.UID {
		return nil
	}
	return &access.Principal{AccountID: sess.AccountID, Role: domain.Role(sess.Role), SessionID: sess.ID}
}

func (s *AccountService) Logout(ctx context.Context, p *access.Principal) error {
	if !access.IsAuthenticated(p) {
		return domain.Unauthorized("Please login first")
	}
	return errors.Wrap(s.sessions.Delete(ctx, p.SessionID), "delete session")
}

func (s *AccountService) self(ctx context.Context, p *access.Principal, msg string) (*domain.Account, error) {
	if !access.IsAuthenticated(p) {
		return nil, domain.Unauthorized(msg)
	}
	a, err := s.accounts.FindByID(ctx, p.AccountID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.Unauthorized(msg)
	}
	return a, nil
}

// Current 会话对应账号：id/username/email/role
func (s *AccountService) Current(ctx context.Context, p *access.Principal) (*domain.PublicProfile, error) {
	a, err := s.self(ctx, p, "Not authenticated")
	if err != nil {
		return nil, err
	}
	return &domain.PublicProfile{ID: a.ID, Username: a.Username, Email: a.Email, Role: a.Role}, nil
}

// Profile 会话对应账号：username/email/role/createdAt
func (s *AccountService) Profile(ctx context.Context, p *access.Principal) (*domain.PublicProfile, error) {
	a, err := s.self(ctx, p, "Please login first")
	if err != nil {
		return nil, err
	}
	return &domain.PublicProfile{Username: a.Username, Email: a.Email, Role: a.Role, CreatedAt: a.CreatedAt}, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, p *access.Principal) ([]domain.PublicProfile, error) {
	if err := access.Require(p, domain.RoleAdmin, "Admin privileges required"); err != nil {
		return nil, err
	}
	list, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicProfile, 0, len(list))
	for i := range list {
		out = append(out, list[i].Public())
	}
	return out, nil
}
