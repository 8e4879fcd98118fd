package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Config holds all server settings.
type Config struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	DatabasePath string `json:"database_path"`
	JWTSecret    string `json:"jwt_secret"`
	TokenTTLMin  int    `json:"token_ttl_minutes"`

	DefaultRoom       string `json:"default_room"`
	BacklogLimit      int    `json:"backlog_limit"`
	MaxMessageLength  int    `json:"max_message_length"`
	MaxRoomNameLength int    `json:"max_room_name_length"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Host:              "localhost",
		Port:              8080,
		DatabasePath:      "chat.db",
		JWTSecret:         "change-me-in-production",
		TokenTTLMin:       12 * 60,
		DefaultRoom:       "general",
		BacklogLimit:      30,
		MaxMessageLength:  2000,
		MaxRoomNameLength: 64,
	}
}

// Load reads a JSON config file on top of the defaults and applies
// environment overrides. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, ErrConfigNotFound
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from environment variables when present.
func (c *Config) applyEnv() {
	if host := os.Getenv("CHAT_HOST"); host != "" {
		c.Host = host
	}
	if port := os.Getenv("CHAT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Port = p
		}
	}
	if db := os.Getenv("CHAT_DB"); db != "" {
		c.DatabasePath = db
	}
	if secret := os.Getenv("CHAT_JWT_SECRET"); secret != "" {
		c.JWTSecret = secret
	}
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks that the configuration is usable.
func Validate(c *Config) error {
	var problems []string

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port must be 1-65535, got %d", c.Port))
	}
	if strings.TrimSpace(c.DefaultRoom) == "" {
		problems = append(problems, "default_room must not be empty")
	}
	if c.BacklogLimit < 0 {
		problems = append(problems, fmt.Sprintf("backlog_limit must not be negative, got %d", c.BacklogLimit))
	}
	if c.MaxMessageLength <= 0 {
		problems = append(problems, fmt.Sprintf("max_message_length must be positive, got %d", c.MaxMessageLength))
	}
	if c.MaxRoomNameLength <= 0 {
		problems = append(problems, fmt.Sprintf("max_room_name_length must be positive, got %d", c.MaxRoomNameLength))
	}
	if len(strings.TrimSpace(c.DefaultRoom)) > c.MaxRoomNameLength {
		problems = append(problems, "default_room exceeds max_room_name_length")
	}
	if c.TokenTTLMin <= 0 {
		problems = append(problems, fmt.Sprintf("token_ttl_minutes must be positive, got %d", c.TokenTTLMin))
	}
	if c.JWTSecret == "" {
		problems = append(problems, "jwt_secret must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
