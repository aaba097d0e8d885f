package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.Model)
	assert.Equal(t, "development", cfg.Logger.Mode)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blinkfast.yml")
	body := `
listen: ":9090"
jwt_secret: file-secret
logger:
  mode: production
  file_enable: true
  filename: /tmp/bf.log
gemini:
  api_key: key-from-file
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.True(t, cfg.Logger.FileEnable)
	assert.Equal(t, "key-from-file", cfg.Gemini.APIKey)
	// Unset fields keep their defaults.
	assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.Model)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_ENDPOINT", "http://gemini-proxy:9000")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("BLINKFAST_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, "http://gemini-proxy:9000", cfg.Gemini.Endpoint)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestBadYamlIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
