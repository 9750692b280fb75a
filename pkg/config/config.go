package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment
type Config struct {
	Port          string
	GinMode       string
	DatabaseURL   string
	DataPath      string
	JWTSecret     string
	MasterSecret  string
	AdminUsername string
	AdminPassword string
	MaxShifts     int
	RulesFile     string
	LogLevel      string
}

// LoadDotEnv loads the first .env found in the working directory or its
// parents. A missing file is not an error.
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// FromEnv builds a Config from environment variables, applying defaults
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "8000"),
		GinMode:       os.Getenv("GIN_MODE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataPath:      getenv("DATA_PATH", "roster.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		MasterSecret:  os.Getenv("API_MASTER_SECRET"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		RulesFile:     os.Getenv("ROSTER_RULES_FILE"),
		LogLevel:      strings.ToLower(getenv("LOG_LEVEL", "info")),
		MaxShifts:     4,
	}

	if v := os.Getenv("ROSTER_MAX_SHIFTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("ROSTER_MAX_SHIFTS must be a positive integer, got %q", v)
		}
		cfg.MaxShifts = n
	}
	return cfg, nil
}

// Load reads .env (if any) and then the environment
func Load() (*Config, error) {
	LoadDotEnv()
	return FromEnv()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
