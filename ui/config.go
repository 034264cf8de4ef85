package ui

import (
	"time"
)

// Default configuration values.
const (
	DefaultTitle         = "AI Assistant"
	DefaultCookieName    = "agentrelay_browser"
	DefaultIdleTimeout   = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Config holds UI package configuration.
type Config struct {
	// BasePath is the URL prefix where the UI is mounted.
	// For example, if mounted at "/chat/", set BasePath to "/chat".
	// Defaults to empty string (root mount).
	BasePath string

	// Title and Subtitle are shown in the page header.
	Title    string
	Subtitle string

	// ReadOnly disables sending prompts and rating replies.
	ReadOnly bool

	// CookieName names the cookie carrying the browser id.
	// Defaults to DefaultCookieName.
	CookieName string

	// SecureCookie marks the browser cookie Secure (HTTPS deployments).
	SecureCookie bool

	// IdleTimeout evicts chat sessions unused for this long.
	// Defaults to 30 minutes.
	IdleTimeout time.Duration

	// SweepInterval is the minimum time between idle-session sweeps.
	// Defaults to 1 minute.
	SweepInterval time.Duration

	// Logger for structured logging.
	// If nil, logging is disabled.
	Logger Logger
}

// Logger interface for structured logging.
// Compatible with agentrelay.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Title:         DefaultTitle,
		CookieName:    DefaultCookieName,
		IdleTimeout:   DefaultIdleTimeout,
		SweepInterval: DefaultSweepInterval,
	}
}

// applyDefaults fills in default values for zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = DefaultSweepInterval
	}
}

// validate checks the configuration for errors.
func (c *Config) validate() error {
	if c.IdleTimeout < time.Minute {
		return ErrInvalidConfig
	}
	if c.SweepInterval < time.Second {
		return ErrInvalidConfig
	}
	return nil
}
