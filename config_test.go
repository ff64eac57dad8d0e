package houdiniswap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	_, err := LoadConfig("", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err, "an explicitly named missing file is an error")

	cfg, err := LoadConfig("prod", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "v1", cfg.APIVersion)
	assert.True(t, cfg.VerifySSL)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 1.0, cfg.RetryBackoffFactor)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HOUDINI_SWAP_API_URL", "https://staging.example.com")
	t.Setenv("HOUDINI_SWAP_TIMEOUT", "45")
	t.Setenv("HOUDINI_SWAP_MAX_RETRIES", "7")
	t.Setenv("HOUDINI_SWAP_CACHE_ENABLED", "true")
	t.Setenv("HOUDINI_SWAP_API_KEY", "env-key")
	t.Setenv("HOUDINI_SWAP_API_SECRET", "env-secret")

	cfg, err := LoadConfig("prod", "")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "env-secret", cfg.APISecret)
}

func TestLoadConfigProfileSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "houdiniswap.json")
	contents := `{
		"dev":    {"timeout": 5,  "max_retries": 1},
		"prod":   {"timeout": 60, "max_retries": 5},
		"global": {"api_version": "v2"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	dev, err := LoadConfig("dev", path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, dev.Timeout)
	assert.Equal(t, 1, dev.MaxRetries)
	assert.Equal(t, "v2", dev.APIVersion, "global section applies to every profile")

	prod, err := LoadConfig("prod", path)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, prod.Timeout)
	assert.Equal(t, 5, prod.MaxRetries)
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "houdiniswap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"prod": {"timeout": 60}}`), 0o600))

	t.Setenv("HOUDINI_SWAP_TIMEOUT", "15")

	cfg, err := LoadConfig("prod", path)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadConfigProfileFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "houdiniswap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"staging": {"max_retries": 9}}`), 0o600))

	t.Setenv("HOUDINI_SWAP_PROFILE", "staging")

	cfg, err := LoadConfig("", path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.MaxRetries)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "houdiniswap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := LoadConfig("prod", path)
	require.Error(t, err)
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := Config{
		APIKey:             "cfg-key",
		APISecret:          "cfg-secret",
		BaseURL:            "https://example.com/",
		Timeout:            10 * time.Second,
		APIVersion:         "v2",
		VerifySSL:          true,
		MaxRetries:         2,
		RetryBackoffFactor: 0.5,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
	}

	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "https://example.com", client.baseURL)
	assert.Equal(t, 10*time.Second, client.timeout)
	assert.Equal(t, "v2", client.apiVersion)
	assert.Equal(t, 2, client.maxRetries)
	assert.Equal(t, 0.5, client.backoffFactor)
	assert.NotNil(t, client.cache)
	assert.Equal(t, time.Minute, client.cacheTTL)
}

func TestNewClientFromConfigMissingCredentials(t *testing.T) {
	_, err := NewClientFromConfig(Config{BaseURL: "https://example.com"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestNewClientFromConfigExtraOptionsWin(t *testing.T) {
	cfg := Config{APIKey: "k", APISecret: "s", MaxRetries: 2}
	client, err := NewClientFromConfig(cfg, WithMaxRetries(6))
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 6, client.maxRetries)
}
