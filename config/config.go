package config

import (
	"math/rand"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the remover.
type Config struct {
	InputCSV    string
	ResultsCSV  string
	DebugDir    string
	UserDataDir string

	// Browser
	FeedURL   string
	Headless  bool
	UserAgent string

	// Behaviour
	DryRun   bool
	MinDelay float64 // seconds, lower bound of the inter-profile wait
	MaxDelay float64 // seconds, upper bound

	// Timing
	NavTimeout    time.Duration
	GlobalTimeout time.Duration

	// PostgreSQL (optional results mirror)
	DBEnabled  bool
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Default returns a Config populated with sensible defaults.
// Headless is off because first-run login happens by hand in the window.
func Default() Config {
	return Config{
		InputCSV:    getEnv("INPUT_CSV", "data/Connections.csv"),
		ResultsCSV:  getEnv("RESULTS_CSV", "output/results.csv"),
		DebugDir:    getEnv("DEBUG_DIR", "output/debug"),
		UserDataDir: getEnv("USER_DATA_DIR", "chrome-user-data"),

		FeedURL:  "https://www.linkedin.com/feed/",
		Headless: getEnvBool("HEADLESS", false),
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",

		DryRun:   getEnvBool("DRY_RUN", false),
		MinDelay: getEnvFloat("MIN_DELAY", 2),
		MaxDelay: getEnvFloat("MAX_DELAY", 4),

		NavTimeout:    30 * time.Second,
		GlobalTimeout: 6 * time.Hour,

		DBEnabled:  getEnvBool("DB_ENABLED", false),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "linkedin"),
		DBPassword: getEnv("DB_PASSWORD", "linkedin"),
		DBName:     getEnv("DB_NAME", "connection_remover"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

// RandomDelay draws a wait duration uniformly from [MinDelay, MaxDelay].
func (c Config) RandomDelay() time.Duration {
	lo, hi := c.MinDelay, c.MaxDelay
	if hi < lo {
		lo, hi = hi, lo
	}
	seconds := lo + rand.Float64()*(hi-lo)
	return time.Duration(seconds * float64(time.Second))
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
