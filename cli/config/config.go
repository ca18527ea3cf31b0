// Package config handles CLI configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultURL is where boxes listen when run with the documented
// `docker run -p 8080:8080 machinebox/<box>`.
const DefaultURL = "http://localhost:8080"

// Config represents the CLI configuration.
//
//	timeout: 30s
//	boxes:
//	  textbox:
//	    url: http://localhost:8081
//	  facebox:
//	    url: https://facebox.example.com
//	    username: admin
type Config struct {
	Timeout Duration             `yaml:"timeout,omitempty"`
	Boxes   map[string]BoxConfig `yaml:"boxes"`
}

// BoxConfig holds configuration for one box. Passwords are kept in the
// keystore, never in this file.
type BoxConfig struct {
	URL      string `yaml:"url,omitempty"`
	Username string `yaml:"username,omitempty"`
}

// Duration is a time.Duration written as "30s" in YAML.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/machinebox/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "machinebox", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Boxes: make(map[string]BoxConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Boxes == nil {
		cfg.Boxes = make(map[string]BoxConfig)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// GetBox returns the config for the given box, or nil if it is not configured.
func (c *Config) GetBox(id string) *BoxConfig {
	if c.Boxes == nil {
		return nil
	}
	if bc, ok := c.Boxes[id]; ok {
		return &bc
	}
	return nil
}

// URLEnv returns the environment variable that overrides a box URL,
// e.g. MACHINEBOX_TEXTBOX_URL.
func URLEnv(box string) string {
	return "MACHINEBOX_" + strings.ToUpper(box) + "_URL"
}

// BoxURL resolves the URL of a box: the MACHINEBOX_<BOX>_URL environment
// variable, then the config file, then DefaultURL.
func (c *Config) BoxURL(box string) string {
	if u := os.Getenv(URLEnv(box)); u != "" {
		return u
	}
	if bc := c.GetBox(box); bc != nil && bc.URL != "" {
		return bc.URL
	}
	return DefaultURL
}
