package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ayodele/xtractor/internal/engine"
)

type Config struct {
	Port string

	// Auth. Empty disables API key checks.
	APIKey string

	// Storage
	DatabasePath string
	ExportDir    string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Rolling run statistics window
	StatsWindow time.Duration

	// Optional TOML profile overriding extraction heuristics.
	ProfilePath string

	profile *Profile
}

func Load() (Config, error) {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("XTRACTOR_API_KEY"),

		DatabasePath: envOr("XTRACTOR_DB_PATH", "data/xtractor.db"),
		ExportDir:    os.Getenv("XTRACTOR_EXPORT_DIR"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		ProfilePath: os.Getenv("HIERARCHY_CONFIG"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	if cfg.ProfilePath != "" {
		profile, err := LoadProfile(cfg.ProfilePath)
		if err != nil {
			return cfg, fmt.Errorf("load hierarchy profile: %w", err)
		}
		cfg.profile = profile
	}

	return cfg, nil
}

// EngineConfig builds the extraction configuration, applying the profile
// on top of the built-in defaults when one is loaded.
func (c Config) EngineConfig() engine.Config {
	engineCfg := DefaultEngineConfig()
	if c.profile != nil {
		c.profile.Apply(&engineCfg)
	}
	return engineCfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
