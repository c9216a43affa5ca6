package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "SESSION_TTL", "ASSIGNMENT_NAME_FRAGMENTS", "SUPABASE_SERVICE_KEY", "SUPABASE_ANON_KEY"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendSupabase, cfg.StoreBackend)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.NameFragmentMatching)
	assert.False(t, cfg.ServiceRole)
}

func TestLoadPrefersServiceKey(t *testing.T) {
	t.Setenv("SUPABASE_SERVICE_KEY", "service")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/")

	cfg := Load()
	assert.Equal(t, "service", cfg.SupabaseKey)
	assert.True(t, cfg.ServiceRole)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{StoreBackend: BackendMemory, AuthDisabled: true}
	require.NoError(t, cfg.Validate())

	cfg = &Config{StoreBackend: BackendPostgres, AuthDisabled: true}
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg = &Config{StoreBackend: BackendSupabase, SupabaseURL: "https://x.supabase.co", SupabaseKey: "k", SessionSecret: "short"}
	assert.ErrorContains(t, cfg.Validate(), "SESSION_SECRET")

	cfg = &Config{StoreBackend: "mongo", AuthDisabled: true}
	assert.ErrorContains(t, cfg.Validate(), "unknown STORE_BACKEND")
}
