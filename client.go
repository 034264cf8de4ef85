package agentrelay

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/youssefsiam38/agentrelay/conversation"
	"github.com/youssefsiam38/agentrelay/feedback"
	"github.com/youssefsiam38/agentrelay/hooks"
	"github.com/youssefsiam38/agentrelay/remote"
	"github.com/youssefsiam38/agentrelay/storage"
	"github.com/youssefsiam38/agentrelay/types"
)

// Client creates chat sessions against one agent-execution service.
// A Client is safe for concurrent use; the sessions it creates are isolated
// from each other.
type Client struct {
	config       Config
	cfg          *internalConfig
	service      Service
	hooks        *hooks.Registry
	logger       Logger
	artifactMode bool
}

// NewClient creates a new client with the given configuration.
//
// Example:
//
//	client, err := agentrelay.NewClient(agentrelay.Config{
//	    Endpoint: os.Getenv("LANGGRAPH_CLOUD_ENDPOINT"),
//	    APIKey:   os.Getenv("API_KEY"),
//	}, agentrelay.WithHistoryMode(agentrelay.HistoryLatest))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := client.NewSession(ctx)
func NewClient(config Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultInternalConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	service := cfg.service
	if service == nil {
		service = remote.NewClient(config.Endpoint, config.APIKey, cfg.httpClient)
	}

	reg := cfg.hooks
	if reg == nil {
		reg = hooks.NewRegistry()
	}

	var logger Logger = noopLogger{}
	if cfg.logger != nil {
		logger = cfg.logger
	}

	artifactMode := IsLocalEndpoint(config.Endpoint)
	if cfg.artifactMode != nil {
		artifactMode = *cfg.artifactMode
	}

	return &Client{
		config:       config,
		cfg:          cfg,
		service:      service,
		hooks:        reg,
		logger:       logger,
		artifactMode: artifactMode,
	}, nil
}

// NewSession discovers the system assistant and opens a fresh thread.
func (c *Client) NewSession(ctx context.Context) (*Session, error) {
	assistant, err := c.findAssistant(ctx)
	if err != nil {
		return nil, err
	}

	thread, err := c.service.CreateThread(ctx)
	if err != nil {
		return nil, NewRelayError("NewSession", fmt.Errorf("create thread: %w", err))
	}

	c.logger.Debug("session created", "assistant_id", assistant.ID, "thread_id", thread.ID)
	return c.newSession(assistant, thread), nil
}

// ResumeSession continues an existing server-side thread. When a transcript
// store is configured the stored messages of the thread are restored;
// otherwise the log starts empty while runs still see the thread history.
// The session starts with empty rating memory; see Session.AdoptFeedback.
func (c *Client) ResumeSession(ctx context.Context, threadID string) (*Session, error) {
	if _, err := uuid.Parse(threadID); err != nil {
		return nil, NewRelayErrorWithThread("ResumeSession", threadID, ErrInvalidThreadID)
	}

	assistant, err := c.findAssistant(ctx)
	if err != nil {
		return nil, err
	}

	s := c.newSession(assistant, types.Thread{ID: threadID})

	if c.cfg.transcript != nil {
		messages, err := c.cfg.transcript.GetMessages(ctx, threadID)
		switch {
		case errors.Is(err, storage.ErrThreadNotFound):
			c.logger.Debug("no stored transcript for thread", "thread_id", threadID)
		case err != nil:
			c.logger.Warn("failed to restore transcript", "thread_id", threadID, "error", err.Error())
		default:
			if err := s.store.Restore(messages); err != nil {
				return nil, NewRelayErrorWithThread("ResumeSession", threadID, err)
			}
		}
	}

	c.logger.Debug("session resumed", "assistant_id", assistant.ID, "thread_id", threadID, "messages", s.store.Len())
	return s, nil
}

// ArtifactMode reports whether sessions keep tool artifacts
func (c *Client) ArtifactMode() bool {
	return c.artifactMode
}

// Hooks returns the client's hook registry
func (c *Client) Hooks() *hooks.Registry {
	return c.hooks
}

func (c *Client) findAssistant(ctx context.Context) (types.Assistant, error) {
	assistants, err := c.service.SearchAssistants(ctx, c.cfg.assistantMetadata, DefaultAssistantSearchLimit)
	if err != nil {
		return types.Assistant{}, NewRelayError("SearchAssistants", err)
	}
	if len(assistants) == 0 {
		return types.Assistant{}, NewRelayError("SearchAssistants", ErrNoAssistant).
			WithContext("metadata", c.cfg.assistantMetadata)
	}
	return assistants[0], nil
}

func (c *Client) newSession(assistant types.Assistant, thread types.Thread) *Session {
	var opts []conversation.Option
	if c.cfg.transcript != nil {
		opts = append(opts, conversation.WithTranscript(c.cfg.transcript))
	}

	return &Session{
		client:    c,
		assistant: assistant,
		store:     conversation.New(thread, c.service, opts...),
		tracker:   feedback.NewTracker(c.cfg.feedbackSink),
	}
}
