package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDiscord(); err != nil {
		return err
	}
	if err := c.validateOverdue(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	base := strings.TrimSpace(c.Server.BaseURL)
	if base == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/boardhook/config.toml"
		}
		return fmt.Errorf("server.base_url is required. Edit %s (create with 'boardhook config init')", defaultPath)
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("server.base_url must be an absolute URL, got %q", base)
	}
	return nil
}

func (c *Config) validateDiscord() error {
	if c.Discord.RequestTimeout <= 0 {
		return errors.New("discord.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateOverdue() error {
	if c.Overdue.Enabled && c.Overdue.Interval <= 0 {
		return errors.New("overdue.interval must be positive (seconds) when overdue.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
