// Package config loads the users API settings from the environment.
//
// Variables may also come from a `.env` file in the working directory,
// which is convenient for local runs. Values already present in the
// process environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/jacentio/usersapi/store"
)

// Config is the process configuration.
type Config struct {
	// UsersTable names the DynamoDB table (USERS_TABLE).
	// It is not checked here; a bad value fails on the first store call.
	UsersTable string `koanf:"users_table"`

	// DynamoDBEndpoint overrides the DynamoDB endpoint, e.g. for
	// DynamoDB Local (DYNAMODB_ENDPOINT).
	DynamoDBEndpoint string `koanf:"dynamodb_endpoint"`

	// LogLevel is one of debug, info, warn or error (LOG_LEVEL).
	// Default: "info"
	LogLevel string `koanf:"log_level"`
}

// Load reads the configuration from an optional .env file and the
// process environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is ignored.
func LoadFile(dotenv string) (*Config, error) {
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotenv, err)
	}

	// Keys are lowercased env names: USERS_TABLE -> users_table.
	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StoreConfig returns the store configuration for the users table.
func (c *Config) StoreConfig() store.Config {
	cfg := store.DefaultConfig()
	if c.UsersTable != "" {
		cfg.Table = c.UsersTable
	}
	return cfg
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
