package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort    = 8080
	DefaultDatasetPath = "TRIALDB.csv"
)

// Config holds the configuration parsed from config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server settings.
type ServerConfig struct {
	// HTTPPort is the port the HTTP API listens on (default 8080).
	HTTPPort int `yaml:"http_port"`

	// Auth configures optional API-key authentication for all endpoints.
	Auth AuthConfig `yaml:"auth"`

	// Dataset points at the backing data file and controls hot reload.
	Dataset DatasetConfig `yaml:"dataset"`
}

// AuthConfig controls client authentication.
type AuthConfig struct {
	// Mode is one of: apikey | none. Empty means none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected
	// API key. Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header name to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// DatasetConfig points at the backing data file.
type DatasetConfig struct {
	// Path is the delimited file read once at startup. A missing file is not
	// fatal — the server starts with an empty dataset.
	Path string `yaml:"path"`

	// Watch reloads the dataset whenever the file changes. Off by default;
	// without it the dataset is immutable for the process lifetime.
	Watch bool `yaml:"watch"`
}

// Load reads and parses the config file at path. Missing fields are filled
// with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values. It is what a
// server without a config file runs on.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			Dataset: DatasetConfig{
				Path: DefaultDatasetPath,
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Server.Dataset.Path == "" {
		return fmt.Errorf("server.dataset.path must not be empty")
	}
	return nil
}
