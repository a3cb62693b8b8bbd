package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flyers")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageBackendLocal, cfg.StorageBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpires)
	assert.Equal(t, int64(50<<20), cfg.MaxUploadBytes())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flyers")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_SupabaseBackendRequiresKeys(t *testing.T) {
	cfg := &Config{
		DatabaseURL:    "postgres://localhost/flyers",
		JWTSecret:      "secret",
		StorageBackend: StorageBackendSupabase,
		MaxUploadMB:    10,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")

	cfg.SupabaseURL = "https://example.supabase.co"
	cfg.SupabaseServiceKey = "key"
	cfg.SupabaseStorageBucket = "flyer-assets"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := &Config{DatabaseURL: "x", JWTSecret: "y", StorageBackend: "s3", MaxUploadMB: 1}
	assert.Error(t, cfg.Validate())
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("CORS_ALLOWED_ORIGINS", nil))
}

func TestValidate_BootstrapAdmin(t *testing.T) {
	cfg := &Config{DatabaseURL: "x", JWTSecret: "y", StorageBackend: StorageBackendLocal, UploadDir: "uploads", MaxUploadMB: 1}

	cfg.BootstrapAdminEmail = "owner@flyers.example"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set together")

	cfg.BootstrapAdminPassword = "short"
	assert.Error(t, cfg.Validate())

	cfg.BootstrapAdminPassword = "long-enough"
	assert.NoError(t, cfg.Validate())
}
