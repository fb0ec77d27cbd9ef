package domain

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleUnmarshal(t *testing.T) {
	var in struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"recruiter"}`), &in))
	assert.Equal(t, RoleRecruiter, in.Role)

	require.NoError(t, json.Unmarshal([]byte(`{"role":""}`), &in))
	assert.Equal(t, Role(""), in.Role)
	assert.False(t, in.Role.Valid())

	err := json.Unmarshal([]byte(`{"role":"superuser"}`), &in)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestStatusUnmarshal(t *testing.T) {
	var js JobStatus
	require.NoError(t, js.UnmarshalText([]byte("closed")))
	assert.Equal(t, JobClosed, js)
	assert.True(t, IsKind(js.UnmarshalText([]byte("archived")), KindValidation))

	var as ApplicationStatus
	require.NoError(t, as.UnmarshalText([]byte("accepted")))
	assert.Equal(t, ApplicationAccepted, as)
	assert.True(t, IsKind(as.UnmarshalText([]byte("maybe")), KindValidation))
}

func TestKindOfWrapped(t *testing.T) {
	err := errors.Wrap(NotFound("Job not found"), "load job")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, Kind(0), KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindNotFound))
}
