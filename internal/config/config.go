package config

import (
	"os"
	"strconv"
	"time"

	"visitdedupe/domain/dedupe"
	"visitdedupe/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Dedupe DedupeConfig
	Jobs   JobConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig holds upload validation settings
type UploadConfig struct {
	MaxSizeBytes int64
}

// DedupeConfig holds dedupe behavior settings
type DedupeConfig struct {
	DatePolicy dedupe.DatePolicy
}

// JobConfig holds per-request result retention settings
type JobConfig struct {
	TTL time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Upload: UploadConfig{
			MaxSizeBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		},
		Jobs: JobConfig{
			TTL: time.Duration(getEnvIntOrDefault("JOB_TTL_MINUTES", 15)) * time.Minute,
		},
	}

	policy := dedupe.DatePolicy(getEnvOrDefault("DATE_POLICY", string(dedupe.DatePolicyLenient)))
	switch policy {
	case dedupe.DatePolicyLenient, dedupe.DatePolicyStrict:
		config.Dedupe.DatePolicy = policy
	default:
		return nil, errors.ConfigInvalid("DATE_POLICY must be \"lenient\" or \"strict\"")
	}

	if config.Upload.MaxSizeBytes <= 0 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Jobs.TTL <= 0 {
		return nil, errors.ConfigInvalid("JOB_TTL_MINUTES must be positive")
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
