package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 9090
database:
  url: postgres://localhost/realestate
  auto_migrate: true
jwt:
  secret: file-secret
workflow:
  strict_transitions: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := FromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:9090", cfg.Address())
	assert.Equal(t, "postgres://localhost/realestate", cfg.Database.DSN)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Workflow.StrictTransitions)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, time.Duration(defaultJWTTTL)*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "Administrator", cfg.Admin.Name)
}

func TestFromFileErrors(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))
	_, err = FromFile(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/realestate")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_TTL", "15")
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("WORKFLOW_STRICT_TRANSITIONS", "true")
	t.Setenv("FIRST_ADMIN_EMAIL", "admin@example.com")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Workflow.StrictTransitions)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, "admin@example.com", cfg.Admin.Email)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Database.DSN = "postgres://localhost/realestate"
		cfg.JWT.Secret = "secret"
		cfg.applyDefaults()
		return cfg
	}

	assert.NoError(t, valid().Validate())

	noDSN := valid()
	noDSN.Database.DSN = ""
	assert.Error(t, noDSN.Validate())

	noSecret := valid()
	noSecret.JWT.Secret = ""
	assert.Error(t, noSecret.Validate())

	badPort := valid()
	badPort.Server.Port = 70000
	assert.Error(t, badPort.Validate())
}
