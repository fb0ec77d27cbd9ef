package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobboard/internal/access"
	"jobboard/internal/core/auth"
	"jobboard/internal/core/cache"
	"jobboard/internal/core/database"
	"jobboard/internal/domain"
	"jobboard/internal/repo"
)

type env struct {
	db       *gorm.DB
	accounts *AccountService
	jobs     *JobService
	apps     *ApplicationService
	admin    *AdminService
	sessions *auth.MemorySessionStore
}

func newEnv(t *testing.T, c *cache.Cache) *env {
	t.Helper()
	var mu sync.Mutex
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		LogLevel:     "silent",
		NowFunc: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			clock = clock.Add(time.Second)
			return clock
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, e := db.DB(); e == nil {
			_ = sqlDB.Close()
		}
	})

	log := zap.NewNop()
	accountRepo := repo.NewAccountRepo(db)
	jobRepo := repo.NewJobRepo(db)
	appRepo := repo.NewApplicationRepo(db)
	profiles := NewProfiles(accountRepo, c, time.Minute)
	sessions := auth.NewMemorySessionStore()
	jwt := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "jobboard-test", TTL: time.Hour}

	return &env{
		db:       db,
		accounts: NewAccountService(accountRepo, sessions, jwt, log),
		jobs:     NewJobService(jobRepo, profiles, log),
		apps:     NewApplicationService(appRepo, jobRepo, profiles, log),
		admin:    NewAdminService(jobRepo, appRepo, profiles, log),
		sessions: sessions,
	}
}

// signup 注册并登录，返回会话主体
func (e *env) signup(t *testing.T, username string, role domain.Role) *access.Principal {
	t.Helper()
	ctx := context.Background()
	_, err := e.accounts.Register(ctx, RegisterInput{
		Username: username, Email: username + "@example.com", Password: "pw-" + username, Role: role,
	})
	require.NoError(t, err)
	res, err := e.accounts.Authenticate(ctx, LoginInput{Username: username, Password: "pw-" + username})
	require.NoError(t, err)
	p := e.accounts.Resolve(ctx, res.Token)
	require.NotNil(t, p)
	return p
}

func ptr[T any](v T) *T { return &v }

func jobInput(title string) JobInput {
	return JobInput{
		Title:       ptr(title),
		Company:     ptr("Acme"),
		Location:    ptr("Berlin"),
		Salary:      &SalaryInput{Min: ptr(3000.0), Max: ptr(5000.0)},
		Description: ptr("kitchen work"),
	}
}

func (e *env) postJob(t *testing.T, p *access.Principal, title string) *domain.Job {
	t.Helper()
	j, err := e.jobs.Create(context.Background(), p, jobInput(title))
	require.NoError(t, err)
	return j
}
