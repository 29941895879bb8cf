package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// BaseURLEnvVar overrides the configured API base address when set.
const BaseURLEnvVar = "FLIXCTL_API_BASE_URL"

// DefaultBaseURL is the hardcoded local-development fallback.
const DefaultBaseURL = "http://localhost:8080/api"

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Session  SessionConfig  `toml:"session"`
	Export   ExportConfig   `toml:"export"`
}

// APIConfig contains remote API settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains local cache database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SessionConfig contains credential store settings.
type SessionConfig struct {
	Path string `toml:"path"`
}

// ExportConfig contains defaults for history/catalog exports.
type ExportConfig struct {
	Format    string `toml:"format"`
	OutputDir string `toml:"output_dir"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveBaseURL returns the API base address: the environment variable when
// set, then the configured value, then the hardcoded fallback.
func (c *Config) ResolveBaseURL() string {
	if env := os.Getenv(BaseURLEnvVar); env != "" {
		return env
	}
	if c != nil && c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return DefaultBaseURL
}
