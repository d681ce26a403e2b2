package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSupabase = "supabase"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	GinMode        string

	StoreDriver     string
	SupabaseURL     string
	SupabaseKey     string
	SQLitePath      string
	DatabaseURL     string
	StoreInitSchema bool
	StoreTimeout    time.Duration

	LogLevel  string
	LogPretty bool

	// DotenvLoaded is false when no env file was found.
	DotenvLoaded bool
}

// Load reads the env file (".env" when none is given) and the process
// environment. Missing env files are not an error.
func Load(envFiles ...string) Config {
	loaded := godotenv.Load(envFiles...) == nil

	return Config{
		Port:           getenv("PORT", "8080"),
		AllowedOrigins: getenvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		GinMode:        getenv("GIN_MODE", "release"),

		StoreDriver:     strings.ToLower(getenv("STORE_DRIVER", DriverSupabase)),
		SupabaseURL:     getenv("SUPABASE_URL", ""),
		SupabaseKey:     getenv("SUPABASE_KEY", ""),
		SQLitePath:      getenv("SQLITE_PATH", "./data/coaching.db"),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		StoreInitSchema: getenvBool("STORE_INIT_SCHEMA", true),
		StoreTimeout:    time.Duration(getenvInt("STORE_TIMEOUT_MS", 30000)) * time.Millisecond,

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogPretty: getenvBool("LOG_PRETTY", false),

		DotenvLoaded: loaded,
	}
}

// Validate checks that the selected store has what it needs to connect.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be set for the supabase store")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set for the sqlite store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want supabase, sqlite or postgres)", c.StoreDriver)
	}

	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}

	// gin.SetMode panics on anything else; empty means debug.
	switch c.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE %q (want debug, release or test)", c.GinMode)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
