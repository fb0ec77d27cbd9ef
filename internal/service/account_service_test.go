package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/access"
	"jobboard/internal/domain"
)

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	_, err := e.accounts.Register(ctx, RegisterInput{Username: "a", Email: "a@x.io", Password: "p", Role: "boss"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.EqualError(t, err, "Invalid role type")

	_, err = e.accounts.Register(ctx, RegisterInput{Username: "a", Password: "p", Role: domain.RoleJobseeker})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	prof, err := e.accounts.Register(ctx, RegisterInput{Username: "ann", Email: "ann@x.io", Password: "p", Role: domain.RoleRecruiter})
	require.NoError(t, err)
	assert.Equal(t, "ann", prof.Username)
	assert.Equal(t, domain.RoleRecruiter, prof.Role)

	_, err = e.accounts.Register(ctx, RegisterInput{Username: "other", Email: "ann@x.io", Password: "p", Role: domain.RoleJobseeker})
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.EqualError(t, err, "Email already registered")

	_, err = e.accounts.Register(ctx, RegisterInput{Username: "ann", Email: "new@x.io", Password: "p", Role: domain.RoleJobseeker})
	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestAuthenticate(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	_, err := e.accounts.Register(ctx, RegisterInput{Username: "bob", Email: "bob@x.io", Password: "secret", Role: domain.RoleJobseeker})
	require.NoError(t, err)

	_, err = e.accounts.Authenticate(ctx, LoginInput{Username: "bob", Password: "wrong"})
	assert.True(t, domain.IsKind(err, domain.KindAuth))
	assert.EqualError(t, err, "Invalid username or password")

	_, err = e.accounts.Authenticate(ctx, LoginInput{Username: "nobody", Password: "secret"})
	assert.True(t, domain.IsKind(err, domain.KindAuth))

	_, err = e.accounts.Authenticate(ctx, LoginInput{Username: "bob", Password: "secret", Role: domain.RoleRecruiter})
	assert.True(t, domain.IsKind(err, domain.KindAuth))
	assert.EqualError(t, err, "Role mismatch")

	res, err := e.accounts.Authenticate(ctx, LoginInput{Username: "bob", Password: "secret", Role: domain.RoleJobseeker})
	require.NoError(t, err)
	assert.Equal(t, "bob", res.User.Username)
	assert.NotEmpty(t, res.Token)

	p := e.accounts.Resolve(ctx, res.Token)
	require.NotNil(t, p)
	assert.Equal(t, domain.RoleJobseeker, p.Role)
}

func TestLogoutRevokesToken(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	_, err := e.accounts.Register(ctx, RegisterInput{Username: "cat", Email: "cat@x.io", Password: "pw", Role: domain.RoleJobseeker})
	require.NoError(t, err)
	res, err := e.accounts.Authenticate(ctx, LoginInput{Username: "cat", Password: "pw"})
	require.NoError(t, err)

	p := e.accounts.Resolve(ctx, res.Token)
	require.NotNil(t, p)
	require.NoError(t, e.accounts.Logout(ctx, p))
	assert.Nil(t, e.accounts.Resolve(ctx, res.Token))

	assert.True(t, domain.IsKind(e.accounts.Logout(ctx, nil), domain.KindAuth))
	assert.Nil(t, e.accounts.Resolve(ctx, "garbage"))
}

func TestCurrentAndProfile(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	p := e.signup(t, "dan", domain.RoleRecruiter)

	cur, err := e.accounts.Current(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.AccountID, cur.ID)
	assert.Equal(t, "dan", cur.Username)

	prof, err := e.accounts.Profile(ctx, p)
	require.NoError(t, err)
	assert.Empty(t, prof.ID)
	assert.False(t, prof.CreatedAt.IsZero())

	_, err = e.accounts.Current(ctx, nil)
	assert.EqualError(t, err, "Not authenticated")
	_, err = e.accounts.Profile(ctx, nil)
	assert.True(t, domain.IsKind(err, domain.KindAuth))
}

func TestListAccountsAdminOnly(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	admin := e.signup(t, "root", domain.RoleAdmin)
	seeker := e.signup(t, "eve", domain.RoleJobseeker)

	_, err := e.accounts.ListAccounts(ctx, seeker)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = e.accounts.ListAccounts(ctx, nil)
	assert.True(t, domain.IsKind(err, domain.KindAuth))

	list, err := e.accounts.ListAccounts(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "eve", list[0].Username)

	list, err = e.accounts.ListAccounts(ctx, access.Operator())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
