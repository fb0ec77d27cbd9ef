package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/domain"
)

func TestHireFlow(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	r := e.signup(t, "r", domain.RoleRecruiter)
	a := e.signup(t, "a", domain.RoleJobseeker)
	j := e.postJob(t, r, "Cook")

	app, err := e.apps.Submit(ctx, a, SubmitInput{JobID: j.ID, CoverLetter: "hi"})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, r.AccountID, app.RecruiterID)

	received, err := e.apps.ListReceived(ctx, r)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, domain.ApplicationPending, received[0].Status)
	require.NotNil(t, received[0].Applicant)
	assert.Equal(t, "a", received[0].Applicant.Username)
	require.NotNil(t, received[0].Job)
	assert.Equal(t, "Cook", received[0].Job.Title)

	_, err = e.apps.SetStatus(ctx, r, app.ID, domain.ApplicationAccepted)
	require.NoError(t, err)

	sent, err := e.apps.ListSent(ctx, a)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, domain.ApplicationAccepted, sent[0].Status)
	require.NotNil(t, sent[0].Recruiter)
	assert.Equal(t, "r", sent[0].Recruiter.Username)
}

func TestSubmitTwiceConflicts(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	r := e.signup(t, "r", domain.RoleRecruiter)
	a := e.signup(t, "a", domain.RoleJobseeker)
	j := e.postJob(t, r, "Cook")

	_, err := e.apps.Submit(ctx, a, SubmitInput{JobID: j.ID})
	require.NoError(t, err)
	_, err = e.apps.Submit(ctx, a, SubmitInput{JobID: j.ID})
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.EqualError(t, err, "You have already applied for this position")

	sent, err := e.apps.ListSent(ctx, a)
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}

func TestConcurrentSubmitCreatesOneRecord(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	r := e.signup(t, "r", domain.RoleRecruiter)
	a := e.signup(t, "a", domain.RoleJobseeker)
	j := e.postJob(t, r, "Cook")

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.apps.Submit(ctx, a, SubmitInput{JobID: j.ID}); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.True(t, domain.IsKind(err, domain.KindConflict), "got %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)

	sent, err := e.apps.ListSent(ctx, a)
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}

func TestSubmitRules(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	r := e.signup(t, "r", domain.RoleRecruiter)
	a := e.signup(t, "a", domain.RoleJobseeker)
	j := e.postJob(t, r, "Cook")

	_, err := e.apps.Submit(ctx, r, SubmitInput{JobID: j.ID})
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = e.apps.Submit(ctx, a, SubmitInput{JobID: "missing"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	_, err = e.apps.Submit(ctx, a, SubmitInput{})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	// 已关闭的职位仍可投递
	_, err = e.jobs.SetStatus(ctx, r, j.ID, domain.JobClosed)
	require.NoError(t, err)
	_, err = e.apps.Submit(ctx, a, SubmitInput{JobID: j.ID})
	assert.NoError(t, err)
}

func TestApplicationStatusOwnership(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	r := e.signup(t, "r", domain.RoleRecruiter)
	other := e.signup(t, "other", domain.RoleRecruiter)
	a := e.signup(t, "a", domain.RoleJobseeker)
	j := e.postJob(t, r, "Cook")
	app, err := e.apps.Submit(ctx, a, SubmitInput{JobID: j.ID})
	require.NoError(t, err)

	_, err = e.apps.SetStatus(ctx, other, app.ID, domain.ApplicationRejected)
	assert.EqualError(t, err, "Application not found or no permission to modify")
	_, err = e.apps.SetStatus(ctx, r, app.ID, "maybe")
	assert.EqualError(t, err, "Invalid status value")
	_, err = e.apps.SetStatus(ctx, a, app.ID, domain.ApplicationAccepted)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	_, err = e.apps.ListReceived(ctx, a)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = e.apps.ListSent(ctx, r)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestWithdraw(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	r := e.signup(t, "r", domain.RoleRecruiter)
	a := e.signup(t, "a", domain.RoleJobseeker)
	b := e.signup(t, "b", domain.RoleJobseeker)
	j1 := e.postJob(t, r, "Cook")
	j2 := e.postJob(t, r, "Waiter")

	pending, err := e.apps.Submit(ctx, a, SubmitInput{JobID: j1.ID})
	require.NoError(t, err)
	decided, err := e.apps.Submit(ctx, a, SubmitInput{JobID: j2.ID})
	require.NoError(t, err)
	_, err = e.apps.SetStatus(ctx, r, decided.ID, domain.ApplicationRejected)
	require.NoError(t, err)

	err = e.apps.Withdraw(ctx, b, pending.ID)
	assert.EqualError(t, err, "Application not found or cannot be deleted")
	err = e.apps.Withdraw(ctx, a, decided.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	err = e.apps.Withdraw(ctx, r, pending.ID)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))

	require.NoError(t, e.apps.Withdraw(ctx, a, pending.ID))
	sent, err := e.apps.ListSent(ctx, a)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, decided.ID, sent[0].ID)
}
