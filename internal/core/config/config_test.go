package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadWithDefaults(t *testing.T) {
	p := writeConfig(t, `
jwt:
  secret: abc
db:
  driver: postgres
  dsn: postgres://u:p@localhost/jobs
cors:
  allowOrigins: ["http://localhost:3000"]
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "abc", c.JWT.Secret)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "jb_session", c.Session.CookieName)
	assert.Equal(t, 24*60, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, []string{"http://localhost:3000"}, c.CORS.AllowOrigins)
	assert.Equal(t, 300, c.Redis.ProfileTTLSec)
}

func TestLoadEnvOverride(t *testing.T) {
	p := writeConfig(t, "jwt:\n  secret: abc\napp:\n  http:\n    port: 9000\n")
	t.Setenv("APP_APP_HTTP_PORT", "9100")
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9100, c.App.HTTP.Port)
}

func TestLoadRequiresSecret(t *testing.T) {
	_, err := Load(writeConfig(t, "app:\n  name: x\n"))
	assert.ErrorContains(t, err, "jwt.secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
