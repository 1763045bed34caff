package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Sync        SyncConfig    `toml:"sync"`
	AI          AIConfig      `toml:"ai"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`                                      // "json" or "text"
	Output     []string `toml:"output"`                                      // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                 // Time format for logs (default: "15:04:05")
}

// SyncConfig contains configuration for WordPress sync behavior
type SyncConfig struct {
	PollSchedule   string `toml:"poll_schedule"`   // Cron schedule for the background sync poll
	RequestTimeout string `toml:"request_timeout"` // HTTP timeout for WordPress REST calls (duration string)
}

// RequestTimeoutDuration parses the configured request timeout, falling
// back to 30s when unset or invalid.
func (c *SyncConfig) RequestTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// AIConfig contains default AI provider settings. These seed the stored
// settings on first start; runtime reconfiguration goes through the API.
type AIConfig struct {
	Provider  string `toml:"provider" validate:"oneof=google openai deepseek anthropic"`
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`   // Override endpoint for OpenAI-compatible providers
	RateLimit string `toml:"rate_limit"` // Minimum interval between provider requests (duration string)
	Timeout   string `toml:"timeout"`    // Per-request timeout as duration string
}

// NewDefaultConfig creates a configuration with default values
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in wpstudio.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Sync: SyncConfig{
			PollSchedule:   "@every 30s",
			RequestTimeout: "30s",
		},
		AI: AIConfig{
			Provider:  "google",
			APIKey:    "", // User must provide API key (no fallback)
			Model:     "gemini-2.5-flash",
			BaseURL:   "",
			RateLimit: "1s",
			Timeout:   "2m",
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env -> CLI. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	// Start with defaults
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier files)
	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// Apply environment variables (overrides all file configs)
	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against struct validation rules
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: WPSTUDIO_ENV, fallback: GO_ENV)
	if env := os.Getenv("WPSTUDIO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("WPSTUDIO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("WPSTUDIO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("WPSTUDIO_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("WPSTUDIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("WPSTUDIO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("WPSTUDIO_LOG_OUTPUT"); output != "" {
		// Split comma-separated output types
		outputs := []string{}
		for _, o := range splitString(output, ",") {
			trimmed := trimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Sync configuration
	if schedule := os.Getenv("WPSTUDIO_SYNC_POLL_SCHEDULE"); schedule != "" {
		config.Sync.PollSchedule = schedule
	}
	if timeout := os.Getenv("WPSTUDIO_SYNC_REQUEST_TIMEOUT"); timeout != "" {
		if _, err := time.ParseDuration(timeout); err == nil {
			config.Sync.RequestTimeout = timeout
		}
	}

	// AI configuration
	if provider := os.Getenv("WPSTUDIO_AI_PROVIDER"); provider != "" {
		config.AI.Provider = provider
	}
	if apiKey := os.Getenv("WPSTUDIO_AI_API_KEY"); apiKey != "" {
		config.AI.APIKey = apiKey
	}
	if model := os.Getenv("WPSTUDIO_AI_MODEL"); model != "" {
		config.AI.Model = model
	}
	if baseURL := os.Getenv("WPSTUDIO_AI_BASE_URL"); baseURL != "" {
		config.AI.BaseURL = baseURL
	}
	if rateLimit := os.Getenv("WPSTUDIO_AI_RATE_LIMIT"); rateLimit != "" {
		config.AI.RateLimit = rateLimit
	}
	if timeout := os.Getenv("WPSTUDIO_AI_TIMEOUT"); timeout != "" {
		config.AI.Timeout = timeout
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Helper functions for string manipulation
func splitString(s, sep string) []string {
	result := []string{}
	start := 0
	for i := 0; i < len(s); i++ {
		if i+len(sep) <= len(s) && s[i:i+len(sep)] == sep {
			result = append(result, s[start:i])
			start = i + len(sep)
			i = start - 1
		}
	}
	result = append(result, s[start:])
	return result
}

func trimSpace(s string) string {
	start := 0
	end := len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\n' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\n' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := trimSpace(c.Environment)
	return env == "production" || env == "prod"
}
