package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port     string
	LogLevel string

	SupabaseURL string
	SupabaseKey string
	// ServiceRole is true when SupabaseKey came from SUPABASE_SERVICE_KEY.
	ServiceRole bool

	StoreBackend string
	DatabaseURL  string

	SessionDBPath string
	SessionSecret string
	SessionTTL    time.Duration
	AuthDisabled  bool

	CORSOrigins string

	// NameFragmentMatching keeps the substring rule when resolving project
	// references to interns.
	NameFragmentMatching bool
	ImportMaxBytes       int
}

// Load reads the .env file when present, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("No .env file loaded: %v", err)
	}

	serviceKey := os.Getenv("SUPABASE_SERVICE_KEY")
	key := serviceKey
	if key == "" {
		key = os.Getenv("SUPABASE_ANON_KEY")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		SupabaseURL:          strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:          key,
		ServiceRole:          serviceKey != "",
		StoreBackend:         strings.ToLower(getEnv("STORE_BACKEND", BackendSupabase)),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		SessionDBPath:        getEnv("SESSION_DB_PATH", "data/sessions.db"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		SessionTTL:           getDuration("SESSION_TTL", 12*time.Hour),
		AuthDisabled:         getBool("AUTH_DISABLED", false),
		CORSOrigins:          getEnv("CORS_ORIGINS", "*"),
		NameFragmentMatching: getBool("ASSIGNMENT_NAME_FRAGMENTS", true),
		ImportMaxBytes:       getInt("IMPORT_MAX_BYTES", 5<<20),
	}
}

// Validate reports every missing setting required by the chosen backend.
func (c *Config) Validate() error {
	var problems []error
	switch c.StoreBackend {
	case BackendSupabase:
		if c.SupabaseURL == "" {
			problems = append(problems, errors.New("SUPABASE_URL must be set"))
		}
		if c.SupabaseKey == "" {
			problems = append(problems, errors.New("SUPABASE_SERVICE_KEY or SUPABASE_ANON_KEY must be set"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, errors.New("DATABASE_URL must be set for the postgres backend"))
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	if !c.AuthDisabled {
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			problems = append(problems, errors.New("authentication needs SUPABASE_URL and a Supabase key (or set AUTH_DISABLED=true)"))
		}
		if len(c.SessionSecret) < 16 {
			problems = append(problems, errors.New("SESSION_SECRET must be at least 16 characters"))
		}
	}
	return errors.Join(problems...)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
