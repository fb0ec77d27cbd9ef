package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobboard/internal/core/database"
	"jobboard/internal/domain"
	"jobboard/pkg/utils"
)

// newTestDB 每个用例独立的内存库；时钟每次调用前进 1 秒，保证排序确定
func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func seedJob(t *testing.T, jobs *JobRepo, recruiterID string, status domain.JobStatus) *domain.Job {
	t.Helper()
	j := &domain.Job{
		ID: utils.NewID(), Title: "Go Engineer", Company: "Acme", Location: "Remote",
		Salary: domain.Salary{Min: 100, Max: 200},
		Description: "build things", Requirements: []string{"go"}, Status: status, RecruiterID: recruiterID,
	}
	require.NoError(t, jobs.Create(context.Background(), j))
	return j
}

func TestAccountRepoUniqueAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepo(newTestDB(t))

	a := &domain.Account{ID: utils.NewID(), Username: "ann", Email: "ann@x.io", Role: domain.RoleJobseeker, PasswordHash: "h"}
	require.NoError(t, r.Create(ctx, a))

	dup := &domain.Account{ID: utils.NewID(), Username: "bob", Email: "ann@x.io", Role: domain.RoleJobseeker, PasswordHash: "h"}
	err := r.Create(ctx, dup)
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "got %v", err)

	got, err := r.FindByUsername(ctx, "ann")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)

	missing, err := r.FindByEmail(ctx, "nobody@x.io")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := r.FindByIDs(ctx, []string{a.ID, "ghost"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestJobRepoListingAndOwnership(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobRepo(newTestDB(t))

	old := seedJob(t, jobs, "r1", domain.JobActive)
	closed := seedJob(t, jobs, "r1", domain.JobClosed)
	newer := seedJob(t, jobs, "r2", domain.JobActive)

	active, err := jobs.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, newer.ID, active[0].ID)
	assert.Equal(t, old.ID, active[1].ID)

	mine, err := jobs.ListByRecruiter(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, closed.ID, mine[0].ID)

	got, err := jobs.FindOwned(ctx, newer.ID, "r1")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = jobs.FindOwned(ctx, newer.ID, "r2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"go"}, got.Requirements)
}

func TestJobRepoSaveKeepsOwner(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobRepo(newTestDB(t))
	j := seedJob(t, jobs, "r1", domain.JobActive)

	j.Title = "Staff Engineer"
	j.Salary = domain.Salary{}
	j.RecruiterID = "intruder"
	require.NoError(t, jobs.Save(ctx, j))

	got, err := jobs.FindByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.Title)
	assert.Equal(t, "r1", got.RecruiterID)
	assert.Zero(t, got.Salary.Max)
}

func TestJobRepoDeleteCascade(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	jobs, apps := NewJobRepo(db), NewApplicationRepo(db)

	j := seedJob(t, jobs, "r1", domain.JobActive)
	other := seedJob(t, jobs, "r1", domain.JobActive)
	for _, applicant := range []string{"a1", "a2"} {
		require.NoError(t, apps.Create(ctx, &domain.Application{
			ID: utils.NewID(), JobID: j.ID, ApplicantID: applicant, RecruiterID: "r1", Status: domain.ApplicationPending,
		}))
	}
	keep := &domain.Application{ID: utils.NewID(), JobID: other.ID, ApplicantID: "a1", RecruiterID: "r1", Status: domain.ApplicationPending}
	require.NoError(t, apps.Create(ctx, keep))

	n, err := jobs.DeleteCascade(ctx, j.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	gone, err := jobs.FindByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	all, err := apps.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

func TestApplicationRepoDuplicateAndScopedLookups(t *testing.T) {
	ctx := context.Background()
	apps := NewApplicationRepo(newTestDB(t))

	a := &domain.Application{ID: utils.NewID(), JobID: "j1", ApplicantID: "a1", RecruiterID: "r1", Status: domain.ApplicationPending}
	require.NoError(t, apps.Create(ctx, a))
	err := apps.Create(ctx, &domain.Application{ID: utils.NewID(), JobID: "j1", ApplicantID: "a1", RecruiterID: "r1", Status: domain.ApplicationPending})
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "got %v", err)

	got, err := apps.FindForRecruiter(ctx, a.ID, "r2")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = apps.FindForRecruiter(ctx, a.ID, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NoError(t, apps.UpdateStatus(ctx, got, domain.ApplicationAccepted))
	assert.Equal(t, domain.ApplicationAccepted, got.Status)

	// 已处理的投递不能撤回
	pending, err := apps.FindPendingForApplicant(ctx, a.ID, "a1")
	require.NoError(t, err)
	assert.Nil(t, pending)

	sent, err := apps.ListByApplicant(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, domain.ApplicationAccepted, sent[0].Status)

	require.NoError(t, apps.Delete(ctx, a.ID))
	all, err := apps.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIsDupKeyFallback(t *testing.T) {
	assert.True(t, isDupKey(errors.New("Error 1062: Duplicate entry 'x' for key 'email'")))
	assert.True(t, isDupKey(errors.New("UNIQUE constraint failed: accounts.email")))
	assert.False(t, isDupKey(errors.New("connection refused")))
}
