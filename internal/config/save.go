package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config to a specific path. Secrets are not written.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	out := c.Redacted()
	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Redacted returns a copy safe to log or write to disk, with API keys
// blanked.
func (c *Config) Redacted() Config {
	out := *c
	out.Contact.SupabaseKey = ""
	out.Contact.ResendAPIKey = ""
	out.Contact.To = append([]string(nil), c.Contact.To...)
	return out
}
