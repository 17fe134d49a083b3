package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/relocate/tui-go/internal/api"
	"github.com/relocate/tui-go/internal/credstore"
)

const dirName = ".relocate"

// Config represents the user's configuration. Values come from the config
// file, then RELOCATE_* environment variables override them.
type Config struct {
	APIURL            string  `json:"api_url" envconfig:"RELOCATE_API_URL"`
	CredentialBackend string  `json:"credential_backend" envconfig:"RELOCATE_CREDENTIAL_BACKEND"`
	DataDir           string  `json:"data_dir,omitempty" envconfig:"RELOCATE_DATA_DIR"` // empty means ~/.relocate
	LogLevel          string  `json:"log_level" envconfig:"RELOCATE_LOG_LEVEL"`
	TimeoutSeconds    int     `json:"timeout_seconds" envconfig:"RELOCATE_TIMEOUT_SECONDS"`
	RetryMax          int     `json:"retry_max" envconfig:"RELOCATE_RETRY_MAX"`
	RateLimit         float64 `json:"rate_limit,omitempty" envconfig:"RELOCATE_RATE_LIMIT"` // requests/sec, 0 = unlimited
	UserID            string  `json:"user_id" envconfig:"RELOCATE_USER_ID"`
	Debug             bool    `json:"debug,omitempty" envconfig:"RELOCATE_DEBUG"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIURL:            api.DefaultBaseURL,
		CredentialBackend: credstore.BackendFile,
		LogLevel:          "info",
		TimeoutSeconds:    15,
		RetryMax:          2,
		UserID:            "demo-user-123",
	}
}

// globalConfigDir returns the global config directory path (~/.relocate)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

func globalConfigPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// projectConfigPath returns the project-level config path (.relocate/config.json in cwd)
func projectConfigPath() string {
	return filepath.Join(dirName, "config.json")
}

// Exists checks if a config file exists (project or global)
func Exists() bool {
	if _, err := os.Stat(projectConfigPath()); err == nil {
		return true
	}
	path, err := globalConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from disk, checking project config first, then
// global, applies environment overrides, and validates the result.
func Load() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadFile() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(projectConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		globalPath, gerr := globalConfigPath()
		if gerr != nil {
			return nil, gerr
		}
		data, err = os.ReadFile(globalPath)
		if errors.Is(err, os.ErrNotExist) {
			// No config exists, use defaults (don't auto-create)
			return cfg, nil
		}
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIURL)
	}
	switch c.CredentialBackend {
	case credstore.BackendFile, credstore.BackendSQLite:
	default:
		return fmt.Errorf("credential_backend must be %q or %q, got %q",
			credstore.BackendFile, credstore.BackendSQLite, c.CredentialBackend)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	if c.RetryMax < 0 {
		return fmt.Errorf("retry_max must not be negative, got %d", c.RetryMax)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %g", c.RateLimit)
	}
	if c.UserID == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	return nil
}

// Timeout returns the per-request timeout, zero meaning none
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolveDataDir returns the directory holding credentials and logs
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return globalConfigDir()
}

// Save writes the config to both project and global locations
func Save(cfg *Config) error {
	// Project config is optional (e.g. read-only working directory)
	_ = SaveToProject(cfg)
	return SaveToGlobal(cfg)
}

// SaveToProject writes the config to .relocate/config.json in the working directory
func SaveToProject(cfg *Config) error {
	if err := os.MkdirAll(dirName, 0o755); err != nil {
		return err
	}
	return writeConfig(projectConfigPath(), cfg)
}

// SaveToGlobal writes the config to ~/.relocate/config.json
func SaveToGlobal(cfg *Config) error {
	dir, err := globalConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return writeConfig(filepath.Join(dir, "config.json"), cfg)
}

func writeConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
