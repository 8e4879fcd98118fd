package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := Validate(cfg); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.DefaultRoom != "general" {
		t.Errorf("Expected default room 'general', got %q", cfg.DefaultRoom)
	}
	if cfg.BacklogLimit != 30 {
		t.Errorf("Expected backlog limit 30, got %d", cfg.BacklogLimit)
	}
	if cfg.MaxMessageLength != 2000 {
		t.Errorf("Expected message cap 2000, got %d", cfg.MaxMessageLength)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chat.json")
		contents := `{"port": 9090, "default_room": "lobby", "backlog_limit": 10}`
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Port != 9090 {
			t.Errorf("Expected port 9090, got %d", cfg.Port)
		}
		if cfg.DefaultRoom != "lobby" {
			t.Errorf("Expected default room 'lobby', got %q", cfg.DefaultRoom)
		}
		if cfg.MaxMessageLength != 2000 {
			t.Errorf("Expected untouched message cap 2000, got %d", cfg.MaxMessageLength)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Expected parse error")
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("CHAT_PORT", "7070")
		t.Setenv("CHAT_JWT_SECRET", "env-secret")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Port != 7070 {
			t.Errorf("Expected env port 7070, got %d", cfg.Port)
		}
		if cfg.JWTSecret != "env-secret" {
			t.Errorf("Expected env jwt secret, got %q", cfg.JWTSecret)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"empty default room", func(c *Config) { c.DefaultRoom = "  " }},
		{"negative backlog", func(c *Config) { c.BacklogLimit = -1 }},
		{"zero message cap", func(c *Config) { c.MaxMessageLength = 0 }},
		{"zero room name cap", func(c *Config) { c.MaxRoomNameLength = 0 }},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }},
		{"zero token ttl", func(c *Config) { c.TokenTTLMin = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := Validate(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
