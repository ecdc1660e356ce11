package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokestory-guide/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SUPABASE_DB_URL", "DATABASE_URL", "PREVIEW_MODE", "DEFAULT_REGION", "API_PORT", "PORT", "CORS_ALLOW_ORIGINS", "IMAGE_ALLOWED_HOSTS"} {
		t.Setenv(k, "")
	}
}

func TestLoadRequiresDatabaseOrPreview(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	require.Error(t, err)

	t.Setenv("PREVIEW_MODE", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.PreviewMode)
	assert.Equal(t, model.Kanto, cfg.DefaultRegion)
	assert.Empty(t, cfg.ImageAllowedHosts)
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/guide")
	t.Setenv("API_PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.test, ,https://b.test ")
	t.Setenv("DEFAULT_REGION", "johto")
	t.Setenv("IMAGE_ALLOWED_HOSTS", "archives.bulbagarden.net, raw.githubusercontent.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/guide", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, model.Johto, cfg.DefaultRegion)
	assert.Equal(t, 5*time.Second, cfg.ImageProbeTimeout)
	assert.Equal(t, []string{"archives.bulbagarden.net", "raw.githubusercontent.com"}, cfg.ImageAllowedHosts)
	assert.Equal(t, "catalog_changed", cfg.CatalogNotifyChannel)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsUnknownRegion(t *testing.T) {
	clearEnv(t)
	t.Setenv("PREVIEW_MODE", "1")
	t.Setenv("DEFAULT_REGION", "orre")
	_, err := Load()
	assert.Error(t, err)
}
