// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// sealKeyLen is the AES-256 key size expected from PWSHARE_SECRET_KEY.
const sealKeyLen = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr    string        `env:"PWSHARE_LISTEN_ADDR"    envDefault:"127.0.0.1:8080"`
	DBPath        string        `env:"PWSHARE_DB_PATH"        envDefault:"pwshare.db"`
	SessionKey    string        `env:"PWSHARE_SESSION_KEY"`
	SessionTTL    time.Duration `env:"PWSHARE_SESSION_TTL"    envDefault:"24h"`
	SecretKey     string        `env:"PWSHARE_SECRET_KEY"`
	BcryptCost    int           `env:"PWSHARE_BCRYPT_COST"    envDefault:"10"`
	SecureCookies bool          `env:"PWSHARE_SECURE_COOKIES" envDefault:"false"`
	LogLevel      slog.Level    `env:"PWSHARE_LOG_LEVEL"      envDefault:"INFO"`

	// SealKey is SecretKey decoded from hex; nil when SecretKey is unset.
	SealKey []byte
}

// HasSessionKey returns true when a session signing key was configured. Without
// one the composition root generates a random key, so sessions do not survive
// a restart.
func (c *Config) HasSessionKey() bool {
	return c.SessionKey != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional. Defaults: PWSHARE_LISTEN_ADDR (127.0.0.1:8080),
// PWSHARE_DB_PATH (pwshare.db), PWSHARE_SESSION_TTL (24h), PWSHARE_BCRYPT_COST (10),
// PWSHARE_LOG_LEVEL (INFO). PWSHARE_SECRET_KEY, when set, must be 64 hex characters
// and enables at-rest sealing of site passwords.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("PWSHARE_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("PWSHARE_BCRYPT_COST must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}

	if cfg.SecretKey != "" {
		key, err := hex.DecodeString(cfg.SecretKey)
		if err != nil {
			return nil, fmt.Errorf("PWSHARE_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != sealKeyLen {
			return nil, errors.New("PWSHARE_SECRET_KEY must decode to 32 bytes (64 hex characters)")
		}
		cfg.SealKey = key
	}

	return &cfg, nil
}
