package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Catalog
	Catalog CatalogConfig

	// Optimizer
	Optimizer OptimizerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// CatalogConfig holds stock catalog configuration
type CatalogConfig struct {
	Path string // 비어 있으면 내장 카탈로그 사용
}

// OptimizerConfig holds lot optimizer defaults
type OptimizerConfig struct {
	RiskFreeRate   float64 // 무위험 수익률 (%, 예: 2.5)
	MaxSearchSpace int64   // 조합 탐색 공간 상한 (fail-closed)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},

		Optimizer: OptimizerConfig{
			RiskFreeRate:   getEnvAsFloat("RISK_FREE_RATE", 2.5),
			MaxSearchSpace: getEnvAsInt64("MAX_SEARCH_SPACE", 20_000_000),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Optimizer.MaxSearchSpace <= 0 {
		return fmt.Errorf("MAX_SEARCH_SPACE must be > 0")
	}

	if c.Catalog.Path != "" {
		if _, err := os.Stat(c.Catalog.Path); err != nil {
			return fmt.Errorf("CATALOG_PATH: %w", err)
		}
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
