package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted for secrets when the file leaves them empty.
const (
	EnvSupabaseURL = "SUPABASE_URL"
	EnvSupabaseKey = "SUPABASE_ANON_KEY"
	EnvResendKey   = "RESEND_API_KEY"
)

// Load loads configuration with priority: defaults < file < environment < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyEnv(cfg)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Contact.Store {
	case "memory":
	case "supabase":
		if c.Contact.SupabaseURL == "" || c.Contact.SupabaseKey == "" {
			return fmt.Errorf("contact store supabase requires supabase_url and supabase_key")
		}
	default:
		return fmt.Errorf("unknown contact store %q", c.Contact.Store)
	}

	switch c.Contact.Mailer {
	case "log":
	case "resend":
		if c.Contact.ResendAPIKey == "" {
			return fmt.Errorf("contact mailer resend requires resend_api_key")
		}
		if len(c.Contact.To) == 0 {
			return fmt.Errorf("contact mailer resend requires at least one recipient")
		}
	default:
		return fmt.Errorf("unknown contact mailer %q", c.Contact.Mailer)
	}

	if c.Stream.FPS <= 0 || c.Stream.FPS > 120 {
		return fmt.Errorf("stream fps must be in 1..120, got %d", c.Stream.FPS)
	}
	if c.Animation.Subdivisions < 0 || c.Animation.Subdivisions > 6 {
		return fmt.Errorf("animation subdivisions must be in 0..6, got %d", c.Animation.Subdivisions)
	}
	if c.Animation.CoreSubdivisions < 0 || c.Animation.CoreSubdivisions > 6 {
		return fmt.Errorf("animation core_subdivisions must be in 0..6, got %d", c.Animation.CoreSubdivisions)
	}
	if c.Animation.Satellites < 0 {
		return fmt.Errorf("animation satellites must not be negative, got %d", c.Animation.Satellites)
	}
	switch c.Graphics.MSAA {
	case 0, 2, 4, 8, 16:
	default:
		return fmt.Errorf("graphics msaa must be 0, 2, 4, 8 or 16, got %d", c.Graphics.MSAA)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if cfg.Contact.SupabaseURL == "" {
		cfg.Contact.SupabaseURL = os.Getenv(EnvSupabaseURL)
	}
	if cfg.Contact.SupabaseKey == "" {
		cfg.Contact.SupabaseKey = os.Getenv(EnvSupabaseKey)
	}
	if cfg.Contact.ResendAPIKey == "" {
		cfg.Contact.ResendAPIKey = os.Getenv(EnvResendKey)
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Morphfolio")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Morphfolio")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "morphfolio")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "morphfolio")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
