package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBPath string

	// Tracking
	GraceMinutes        int
	ShortSessionMinutes int
	SweepInterval       time.Duration

	// Location bounds
	MinRadiusMeters float64
	MaxRadiusMeters float64
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is honored if present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		DBPath:              getEnvOrDefault("SHIFTCLOCK_DB_PATH", defaultDBPath()),
		GraceMinutes:        getEnvAsIntOrDefault("SHIFTCLOCK_GRACE_MINUTES", 5),
		ShortSessionMinutes: getEnvAsIntOrDefault("SHIFTCLOCK_SHORT_SESSION_MINUTES", 5),
		SweepInterval:       getEnvAsDurationOrDefault("SHIFTCLOCK_SWEEP_INTERVAL", time.Minute),
		MinRadiusMeters:     getEnvAsFloatOrDefault("SHIFTCLOCK_MIN_RADIUS_M", 50),
		MaxRadiusMeters:     getEnvAsFloatOrDefault("SHIFTCLOCK_MAX_RADIUS_M", 500),
	}
}

// GracePeriod is the hysteresis window during which a re-entry cancels an exit.
func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.GraceMinutes) * time.Minute
}

// ShortSessionThreshold is the duration below which a closed session is
// flagged as possibly spurious.
func (c *Config) ShortSessionThreshold() time.Duration {
	return time.Duration(c.ShortSessionMinutes) * time.Minute
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "shiftclock.db"
	}
	return filepath.Join(homeDir, ".shiftclock", "shiftclock.db")
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
