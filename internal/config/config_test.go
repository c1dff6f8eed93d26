package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.True(t, cfg.SeedMemory)
	assert.Empty(t, cfg.DatabaseURL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "8080"
request_timeout: 5s
cors_origins:
  - https://a.example
log:
  level: debug
`), 0o600))

	cfg, err := Load(path, envMap(map[string]string{
		"PORT":         "9090",
		"CORS_ORIGINS": "https://b.example, https://c.example,",
		"DATABASE_URL": "postgres://localhost/app",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.CORSOrigins)
	assert.Equal(t, "postgres://localhost/app", cfg.DatabaseURL)
}

func TestLoad_TokenLifetimeIsNotConfigurable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token_ttl: 1h\n"), 0o600))

	cfg, err := Load(path, envMap(map[string]string{"TOKEN_TTL": "not-a-duration"}))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_AppEnvWinsOverNodeEnv(t *testing.T) {
	cfg, err := Load("", envMap(map[string]string{"NODE_ENV": "production", "APP_ENV": "test"}))
	require.NoError(t, err)
	assert.Equal(t, EnvTest, cfg.Env)

	cfg, err = Load("", envMap(map[string]string{"NODE_ENV": "production"}))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := Load("", envMap(map[string]string{"REQUEST_TIMEOUT": "soon"}))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), envMap(nil))
	assert.Error(t, err)
}

func TestValidate_SecretRequiredOutsideDevelopment(t *testing.T) {
	cfg := Defaults()
	cfg.Env = EnvProduction
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "a-real-secret"
	assert.NoError(t, cfg.Validate())

	cfg.Env = "staging"
	assert.Error(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ANIMAL_RES_TEST_KEY=from-dotenv\n"), 0o600))
	t.Setenv("ANIMAL_RES_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("ANIMAL_RES_TEST_KEY"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-dotenv", os.Getenv("ANIMAL_RES_TEST_KEY"))
}
