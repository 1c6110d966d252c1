package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogURL, cfg.CatalogURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 20*time.Second, cfg.CatalogTimeout())
	assert.Equal(t, 2, cfg.Retry403)
	assert.True(t, cfg.AllowHTTPFallback)
	assert.Equal(t, "file", cfg.CatalogStore)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
timeout_seconds: 2.5
request_profile: browser
retry_403: 6
catalog_store: redis
redis:
  address: redis:6379
  database: 3
`)
	t.Setenv("CORUNABUS_RETRY_403", "4")
	t.Setenv("CORUNABUS_ALLOW_HTTP_FALLBACK", "no")
	t.Setenv("CORUNABUS_MONGODB_DATABASE", "buses")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout())
	assert.Equal(t, "browser", cfg.RequestProfile)
	assert.Equal(t, 4, cfg.Retry403)
	assert.False(t, cfg.AllowHTTPFallback)
	assert.Equal(t, "redis", cfg.CatalogStore)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, 3, cfg.Redis.Database)
	assert.Equal(t, "buses", cfg.Mongo.Database)
	assert.Equal(t, DefaultArrivalsURLTemplate, cfg.ArrivalsURLTemplate)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown profile", content: "request_profile: mobile\n"},
		{name: "template without placeholder", content: "arrivals_url_template: https://example.com/arrivals\n"},
		{name: "negative retries", content: "retry_403: -1\n"},
		{name: "zero timeout", content: "timeout_seconds: 0\n"},
		{name: "unknown store", content: "catalog_store: s3\n"},
		{name: "bad max age", content: "catalog_max_age: seven days\n"},
		{name: "not yaml", content: "timeout_seconds: [1\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadInvalidEnvironment(t *testing.T) {
	t.Setenv("CORUNABUS_TIMEOUT_SECONDS", "fast")

	_, err := Load("")

	assert.ErrorContains(t, err, "CORUNABUS_TIMEOUT_SECONDS")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

	assert.Error(t, err)
}

func TestArrivalsURL(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://itranvias.com/queryitr_v3.php?func=0&dato=523", cfg.ArrivalsURL(523))
	assert.Equal(t, "http://x/42/42", ExpandArrivalsURL("http://x/{stop_id}/{stop_id}", 42))
}

func TestMaxAge(t *testing.T) {
	cfg := Default()

	maxAge, err := cfg.MaxAge()
	require.NoError(t, err)

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, start.AddDate(0, 0, 7), maxAge.Shift(start))
}
