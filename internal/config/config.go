package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the application configuration. Values come from the config
// file when present and can always be overridden by NFCTERM_* environment
// variables.
type Config struct {
	APIURL     string        `toml:"api_url"`
	Timeout    time.Duration `toml:"-"`
	TimeoutRaw string        `toml:"timeout"`
	RetryCount int           `toml:"retry_count"`
	ExportDir  string        `toml:"export_dir"`
	LogFile    string        `toml:"log_file"`
	Debug      bool          `toml:"debug"`
}

const (
	DefaultAPIURL     = "http://localhost:8001"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 3
)

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		APIURL:     DefaultAPIURL,
		Timeout:    DefaultTimeout,
		RetryCount: DefaultRetryCount,
		ExportDir:  filepath.Join(homeDir, "Downloads"),
		LogFile:    filepath.Join(homeDir, ".local", "state", "nfcterm", "nfcterm.log"),
	}
}

// DefaultPath is the standard config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "nfcterm", "config.toml")
}

// Load loads configuration from the standard location.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads configuration from a specific path, applies environment
// overrides and validates the result. A missing file is not an error; the
// defaults apply.
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if cfg.TimeoutRaw != "" {
			parsed, err := time.ParseDuration(cfg.TimeoutRaw)
			if err != nil {
				return nil, fmt.Errorf("parsing timeout %q: %w", cfg.TimeoutRaw, err)
			}
			cfg.Timeout = parsed
		}
	}

	cfg.APIURL = getEnvOrDefault("NFCTERM_API_URL", cfg.APIURL)
	cfg.Timeout = parseDurationOrDefault("NFCTERM_TIMEOUT", cfg.Timeout)
	cfg.RetryCount = parseIntOrDefault("NFCTERM_RETRY_COUNT", cfg.RetryCount)
	cfg.ExportDir = expandPath(getEnvOrDefault("NFCTERM_EXPORT_DIR", cfg.ExportDir))
	cfg.LogFile = expandPath(getEnvOrDefault("NFCTERM_LOG", cfg.LogFile))
	if v := os.Getenv("NFCTERM_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.RetryCount < 0 {
		return fmt.Errorf("retry_count must be non-negative, got: %d", c.RetryCount)
	}

	if c.ExportDir == "" {
		return fmt.Errorf("export_dir must not be empty")
	}

	return nil
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
