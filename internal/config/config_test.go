package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fardannozami/coaching-gateway/internal/config"
)

var configKeys = []string{
	"PORT", "CORS_ALLOWED_ORIGINS", "GIN_MODE", "STORE_DRIVER", "SUPABASE_URL",
	"SUPABASE_KEY", "SQLITE_PATH", "DATABASE_URL", "STORE_INIT_SCHEMA",
	"STORE_TIMEOUT_MS", "LOG_LEVEL", "LOG_PRETTY",
}

// clearEnv blanks every key so values from the host do not leak in.
// godotenv never overrides a key that is already set, even to "".
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.False(t, cfg.DotenvLoaded)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, config.DriverSupabase, cfg.StoreDriver)
	assert.Equal(t, "./data/coaching.db", cfg.SQLitePath)
	assert.True(t, cfg.StoreInitSchema)
	assert.Equal(t, 30*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "coach.env")
	content := "STORE_DRIVER=SQLite\nSQLITE_PATH=/tmp/c.db\nSTORE_TIMEOUT_MS=1500\nCORS_ALLOWED_ORIGINS=https://a.test, https://b.test\nSTORE_INIT_SCHEMA=false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := config.Load(path)

	assert.True(t, cfg.DotenvLoaded)
	assert.Equal(t, config.DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/c.db", cfg.SQLitePath)
	assert.Equal(t, 1500*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
	assert.False(t, cfg.StoreInitSchema)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_TIMEOUT_MS", "soon")
	t.Setenv("LOG_PRETTY", "maybe")

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, 30*time.Second, cfg.StoreTimeout)
	assert.False(t, cfg.LogPretty)
}

func TestLoad_UnknownGinModeFailsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("GIN_MODE", "prod")

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.ErrorContains(t, cfg.Validate(), "GIN_MODE")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"supabase ok", config.Config{Port: "8080", StoreDriver: "supabase", SupabaseURL: "https://x.supabase.co", SupabaseKey: "k"}, false},
		{"supabase missing key", config.Config{Port: "8080", StoreDriver: "supabase", SupabaseURL: "https://x.supabase.co"}, true},
		{"postgres missing url", config.Config{Port: "8080", StoreDriver: "postgres"}, true},
		{"postgres ok", config.Config{Port: "8080", StoreDriver: "postgres", DatabaseURL: "postgres://localhost/coach"}, false},
		{"sqlite ok", config.Config{Port: "8080", StoreDriver: "sqlite", SQLitePath: "x.db"}, false},
		{"unknown driver", config.Config{Port: "8080", StoreDriver: "mongo"}, true},
		{"bad port", config.Config{Port: "http", StoreDriver: "sqlite", SQLitePath: "x.db"}, true},
		{"gin test mode", config.Config{Port: "8080", StoreDriver: "sqlite", SQLitePath: "x.db", GinMode: "test"}, false},
		{"unknown gin mode", config.Config{Port: "8080", StoreDriver: "sqlite", SQLitePath: "x.db", GinMode: "production"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
