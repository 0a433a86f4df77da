package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"movieroulette/internal/config"
	"movieroulette/internal/logging"
	"movieroulette/internal/roulette"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	session *roulette.Session
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger writes to the log file, and to stderr when verbose or
// forced (the server always logs to stderr).
func (c *commandContext) ensureLogger(forceConsole bool) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		if forceConsole || (c.verboseFlag != nil && *c.verboseFlag) {
			c.logger, c.loggerErr = logging.NewFromConfig(cfg)
			return
		}
		path := cfg.LogFilePath()
		if path == "" {
			c.logger = logging.NewNop()
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{path},
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureSession(forceConsole bool) (*roulette.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger(forceConsole)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	session, err := roulette.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	c.session = session
	return session, nil
}

func (c *commandContext) withSession(fn func(*roulette.Session) error) error {
	session, err := c.ensureSession(false)
	if err != nil {
		return err
	}
	defer func() { _ = c.close() }()
	return fn(session)
}

func (c *commandContext) close() error {
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// userError replaces err with its user-facing description, keeping it
// available to errors.Is.
func userError(err error) error {
	if err == nil {
		return nil
	}
	return &describedError{err: err}
}

type describedError struct {
	err error
}

func (e *describedError) Error() string { return roulette.Describe(e.err) }

func (e *describedError) Unwrap() error { return e.err }
