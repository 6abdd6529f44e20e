package config

import (
	"os"
	"strconv"

	"fairaudit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Engine   EngineConfig
	Paths    PathConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	Host    string
	Port    int
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// EngineConfig holds fairness engine tuning knobs
type EngineConfig struct {
	SimilarityThreshold float64
	SignificanceLevel   float64
	PermutationCount    int
	SimilarityCeiling   int
	SmallSampleFloor    int
	ScoreBins           int
}

// PathConfig holds file system paths
type PathConfig struct {
	DatasetFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		Server:   loadServerConfig(),
		Engine:   LoadEngineConfig(),
		Paths:    loadPathConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LoadEngineConfig reads only the engine knobs, for callers that do not
// need the server/database sections (CLI, tests).
func LoadEngineConfig() EngineConfig {
	return EngineConfig{
		SimilarityThreshold: getEnvFloatOrDefault("SIMILARITY_THRESHOLD", 0.8),
		SignificanceLevel:   getEnvFloatOrDefault("SIGNIFICANCE_LEVEL", 0.05),
		PermutationCount:    getEnvIntOrDefault("PERMUTATION_COUNT", 1000),
		SimilarityCeiling:   getEnvIntOrDefault("SIMILARITY_CEILING", 5000),
		SmallSampleFloor:    getEnvIntOrDefault("SMALL_SAMPLE_FLOOR", 10),
		ScoreBins:           getEnvIntOrDefault("SCORE_BINS", 10),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:     getEnvOrDefault("DATABASE_URL", ""),
		Host:    getEnvOrDefault("DB_HOST", ""),
		Port:    getEnvIntOrDefault("DB_PORT", 5432),
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadPathConfig() PathConfig {
	return PathConfig{
		DatasetFile: getEnvOrDefault("DATASET_FILE", ""),
	}
}

func validateConfig(config *Config) error {
	e := config.Engine
	if e.SimilarityThreshold <= 0 || e.SimilarityThreshold > 1 {
		return errors.ConfigInvalid("SIMILARITY_THRESHOLD must be in (0,1]")
	}
	if e.SignificanceLevel <= 0 || e.SignificanceLevel >= 1 {
		return errors.ConfigInvalid("SIGNIFICANCE_LEVEL must be in (0,1)")
	}
	if e.PermutationCount < 100 {
		return errors.ConfigInvalid("PERMUTATION_COUNT must be at least 100")
	}
	if e.ScoreBins < 2 {
		return errors.ConfigInvalid("SCORE_BINS must be at least 2")
	}
	return nil
}

// Helper functions for environment variable parsing
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
