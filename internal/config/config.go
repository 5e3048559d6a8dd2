// Package config reads process configuration from the environment and the
// bot behavior pack from its YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backend names accepted by MIBOT_STORAGE_BACKEND.
const (
	StorageMemory    = "memory"
	StorageRedis     = "redis"
	StorageSQLite    = "sqlite"
	StorageFirestore = "firestore"
)

type Config struct {
	Port     string
	LogLevel string

	StorageBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisTTL       time.Duration
	SQLitePath     string
	GCPProjectID   string

	APIKeys    []string
	ModelName  string
	UseMockLLM bool

	BehaviorFile string
	Behavior     *Behavior
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// splitList parses a comma-separated env value, trimming entries and
// dropping empty ones.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads all env vars, loads the behavior pack and validates the
// result.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("MIBOT_LOG_LEVEL", "info"),

		StorageBackend: getEnv("MIBOT_STORAGE_BACKEND", StorageMemory),
		RedisAddr:      getEnv("MIBOT_REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("MIBOT_REDIS_PASSWORD", ""),
		RedisDB:        getIntEnv("MIBOT_REDIS_DB", 0),
		RedisTTL:       getDurationEnv("MIBOT_REDIS_TTL", 0),
		SQLitePath:     getEnv("MIBOT_SQLITE_PATH", "./data/mibot.db"),
		GCPProjectID:   getEnv("MIBOT_GCP_PROJECT", ""),

		APIKeys:    splitList(os.Getenv("MIBOT_API_KEYS")),
		ModelName:  getEnv("MIBOT_MODEL_NAME", "gemini-2.5-flash"),
		UseMockLLM: getBoolEnv("MIBOT_USE_MOCK_LLM", false),

		BehaviorFile: getEnv("MIBOT_BEHAVIOR_FILE", ""),
	}

	behavior, err := LoadBehavior(cfg.BehaviorFile)
	if err != nil {
		return nil, err
	}
	cfg.Behavior = behavior

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("MIBOT_REDIS_ADDR is required for the redis backend")
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("MIBOT_SQLITE_PATH is required for the sqlite backend")
		}
	case StorageFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("MIBOT_GCP_PROJECT is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if !c.UseMockLLM && len(c.APIKeys) == 0 {
		return fmt.Errorf("MIBOT_API_KEYS must list at least one credential")
	}

	return nil
}
