package config

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/roulette/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'roulette config init')", defaultPath)
	}
	if err := validateHTTPURL("tmdb.base_url", c.TMDB.BaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("tmdb.image_base_url", c.TMDB.ImageBaseURL); err != nil {
		return err
	}
	if c.TMDB.RequestTimeoutSeconds < 0 {
		return errors.New("tmdb.request_timeout_seconds must be positive")
	}
	if c.TMDB.MaxPages < 0 {
		return errors.New("tmdb.max_pages must be positive")
	}
	if c.TMDB.Language != "" {
		if _, err := language.Parse(c.TMDB.Language); err != nil {
			return fmt.Errorf("tmdb.language: %q is not a BCP 47 tag (e.g. en-US): %w", c.TMDB.Language, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateHTTPURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", field, value)
	}
	return nil
}
