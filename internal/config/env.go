package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	// If configDir is empty, use the default
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".redline")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg.configDir = configDir

	// Default database and log paths live in the config directory
	cfg.Database.Path = filepath.Join(configDir, "redline.db")
	defaultLogPath := filepath.Join(configDir, "redline.log")

	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// REDLINE_ENV_FILE overrides the .env location entirely
	if envFilePath := getEnvString("REDLINE_ENV_FILE", ""); envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		// Config directory first, current directory as fallback; a missing
		// file is fine, the environment itself still applies
		if err := godotenv.Load(configFilePath); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	cfg.Export = ExportConfig{
		Filename:       getEnvString("REDLINE_FILENAME", "code-review"),
		GroupBy:        getEnvString("REDLINE_GROUP_BY", "filename"),
		PriorityLabels: getEnvStringSlice("REDLINE_PRIORITY_LABELS", DefaultPriorityLabels()),
		IncludeCode:    getEnvBool("REDLINE_INCLUDE_CODE", false),
		TemplatePath:   getEnvString("REDLINE_TEMPLATE_PATH", ""),
	}

	cfg.Database = DatabaseConfig{
		Path:            getEnvString("REDLINE_DB_PATH", cfg.Database.Path),
		JournalMode:     getEnvString("REDLINE_DB_JOURNAL_MODE", "WAL"),
		SynchronousMode: getEnvString("REDLINE_DB_SYNCHRONOUS", "NORMAL"),
		BusyTimeout:     getEnvInt("REDLINE_DB_BUSY_TIMEOUT", 5000),
		ForeignKeys:     getEnvBool("REDLINE_DB_FOREIGN_KEYS", true),
		ConnMaxLife:     getEnvDuration("REDLINE_DB_CONN_MAX_LIFE", time.Hour),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("REDLINE_LOG_LEVEL", "info"),
		Format:     getEnvString("REDLINE_LOG_FORMAT", "text"),
		Output:     getEnvString("REDLINE_LOG_OUTPUT", defaultLogPath),
		AddSource:  getEnvBool("REDLINE_LOG_ADD_SOURCE", false),
		TimeFormat: getEnvString("REDLINE_LOG_TIME_FORMAT", time.RFC3339),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ConfigDir returns the directory the configuration was loaded from
func (c *Config) ConfigDir() string {
	return c.configDir
}
