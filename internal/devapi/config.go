package devapi

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Demo account served by the development API.
const (
	DefaultUsername = "relocate_user"
	DefaultPassword = "SecurePass2025!"
	DefaultUserID   = "demo-user-123"

	recoveryEmail    = "user@relocate.com"
	recoveryFullName = "arizona relocator"
	recoveryAnswer   = "Phoenix"
)

// Config is read from DEVAPI_* environment variables. Keys are matched
// exactly; an unprefixed USERNAME or PORT is ignored.
type Config struct {
	Port     int           `envconfig:"DEVAPI_PORT" default:"8001"`
	Username string        `envconfig:"DEVAPI_USERNAME" default:"relocate_user"`
	Password string        `envconfig:"DEVAPI_PASSWORD" default:"SecurePass2025!"`
	TokenTTL time.Duration `envconfig:"DEVAPI_TOKEN_TTL" default:"24h"`
	UserID   string        `envconfig:"DEVAPI_USER_ID" default:"demo-user-123"`
	LogLevel string        `envconfig:"DEVAPI_LOG_LEVEL" default:"info"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("DEVAPI_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("DEVAPI_USERNAME and DEVAPI_PASSWORD must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("DEVAPI_TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// Options returns the server options for this configuration
func (c *Config) Options() Options {
	return Options{
		Username: c.Username,
		Password: c.Password,
		TokenTTL: c.TokenTTL,
		UserID:   c.UserID,
	}
}
