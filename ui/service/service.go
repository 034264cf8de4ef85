package service

import (
	"time"

	"github.com/youssefsiam38/agentrelay"
)

// DefaultIdleTimeout is how long an unused session is kept
const DefaultIdleTimeout = 30 * time.Minute

// Config holds service configuration.
type Config struct {
	// IdleTimeout evicts sessions not used for this long.
	// Defaults to DefaultIdleTimeout.
	IdleTimeout time.Duration

	// Logger for structured logging. If nil, logging is disabled.
	Logger Logger
}

// Logger interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Service provides chat UI operations on top of an agentrelay.Client.
type Service struct {
	client   *agentrelay.Client
	config   Config
	sessions *sessionTable
	markdown *Markdown
}

// New creates a new Service for client.
func New(client *agentrelay.Client, cfg Config) *Service {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	return &Service{
		client:   client,
		config:   cfg,
		sessions: newSessionTable(time.Now),
		markdown: NewMarkdown(),
	}
}

// Client returns the underlying client.
func (s *Service) Client() *agentrelay.Client {
	return s.client
}

func (s *Service) logWarn(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Warn(msg, args...)
	}
}

func (s *Service) logDebug(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, args...)
	}
}
