package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session 服务端会话记录
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionStore 查不到或已过期时 Get 返回 (nil, nil)
type SessionStore interface {
	Create(ctx context.Context, accountID, role string, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func newSession(accountID, role string, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Role:      role,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// ---------- 进程内实现（未配置 redis 时使用） ----------

type MemorySessionStore struct {
	sessions sync.Map
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{now: time.Now}
}

func (s *MemorySessionStore) Create(_ context.Context, accountID, role string, ttl time.Duration) (*Session, error) {
	sess := newSession(accountID, role, ttl)
	s.sessions.Store(sess.ID, sess)
	return sess, nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, nil
	}
	sess := v.(*Session)
	if s.now().After(sess.ExpiresAt) {
		s.sessions.Delete(id)
		return nil, nil
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.sessions.Delete(id)
	return nil
}

// Sweep 清理过期会话
func (s *MemorySessionStore) Sweep() {
	now := s.now()
	s.sessions.Range(func(key, value any) bool {
		if now.After(value.(*Session).ExpiresAt) {
			s.sessions.Delete(key)
		}
		return true
	})
}

// ---------- redis 实现 ----------

type RedisSessionStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, prefix: "session:"}
}

func (s *RedisSessionStore) Create(ctx context.Context, accountID, role string, ttl time.Duration) (*Session, error) {
	sess := newSession(accountID, role, ttl)
	b, err := json.Marshal(sess)
	if err != nil {
		return nil, errors.Wrap(err, "encode session")
	}
	if err := s.rdb.Set(ctx, s.prefix+sess.ID, b, ttl).Err(); err != nil {
		return nil, errors.Wrap(err, "store session")
	}
	return sess, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(s.rdb.Del(ctx, s.prefix+id).Err(), "delete session")
}
