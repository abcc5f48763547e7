// Package config loads settings for the remindkit command-line tools.
// Values come from built-in defaults, an optional YAML file, then
// REMINDKIT_-prefixed environment variables, each layer overriding the
// previous one.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "REMINDKIT_"

type Config struct {
	CalDAV   CalDAVConfig `koanf:"caldav"`
	Timezone string       `koanf:"timezone"`
	Log      LogConfig    `koanf:"log"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// CalDAVConfig points the client at a CalDAV reminders store. For iCloud
// the password is an app-specific password, not the account password.
type CalDAVConfig struct {
	URL      string `koanf:"url"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Calendar string `koanf:"calendar"` // default calendar collection path
	Timeout  int    `koanf:"timeout"`  // seconds
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"caldav": map[string]interface{}{
			"url":      "https://caldav.icloud.com",
			"username": "",
			"password": "",
			"calendar": "",
			"timeout":  30,
		},
		"timezone": "Local",
		"log": map[string]interface{}{
			"level": "info",
		},
	}
}

// Load reads the configuration, layering an optional YAML file and the
// environment over the defaults.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// REMINDKIT_CALDAV_USERNAME -> caldav.username
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the store credentials are present.
func (c *Config) Validate() error {
	if c.CalDAV.Username == "" {
		return fmt.Errorf("caldav.username is required (set REMINDKIT_CALDAV_USERNAME)")
	}
	if c.CalDAV.Password == "" {
		return fmt.Errorf("caldav.password is required (set REMINDKIT_CALDAV_PASSWORD)")
	}
	if c.CalDAV.Timeout <= 0 {
		return fmt.Errorf("caldav.timeout must be positive")
	}
	return nil
}

// HTTPTimeout returns the CalDAV timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.CalDAV.Timeout) * time.Second
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
