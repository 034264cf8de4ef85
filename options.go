package agentrelay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/youssefsiam38/agentrelay/feedback"
	"github.com/youssefsiam38/agentrelay/hooks"
	"github.com/youssefsiam38/agentrelay/remote"
	"github.com/youssefsiam38/agentrelay/storage"
	"github.com/youssefsiam38/agentrelay/streaming"
	"github.com/youssefsiam38/agentrelay/types"
)

// Service is the subset of the agent-execution service API a session uses.
// *remote.Client implements it.
type Service interface {
	CreateThread(ctx context.Context) (types.Thread, error)
	SearchAssistants(ctx context.Context, metadata map[string]any, limit int) ([]types.Assistant, error)
	StreamRun(ctx context.Context, threadID string, run remote.RunRequest) (streaming.Source, error)
}

// Option is a functional option for configuring a Client
type Option func(*internalConfig) error

type internalConfig struct {
	httpClient        *http.Client
	service           Service
	nodes             streaming.Nodes
	streamMode        []string
	assistantMetadata map[string]any
	artifactMode      *bool
	historyMode       HistoryMode
	feedbackSink      feedback.Sink
	transcript        storage.Store
	hooks             *hooks.Registry
	logger            Logger
}

func defaultInternalConfig() *internalConfig {
	return &internalConfig{
		nodes:             streaming.DefaultNodes,
		streamMode:        []string{remote.StreamModeMessages},
		assistantMetadata: DefaultAssistantMetadata(),
		historyMode:       HistoryLatest,
	}
}

// WithHTTPClient sets the HTTP client used to reach the service.
// Run streams are long-lived; avoid a short overall timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *internalConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithService replaces the HTTP service client, mainly for tests
func WithService(svc Service) Option {
	return func(cfg *internalConfig) error {
		if svc == nil {
			return fmt.Errorf("%w: service is nil", ErrInvalidConfig)
		}
		cfg.service = svc
		return nil
	}
}

// WithNodes sets the names of the answer and tool nodes of the remote graph
func WithNodes(nodes streaming.Nodes) Option {
	return func(cfg *internalConfig) error {
		if nodes.Answer == "" || nodes.Tool == "" {
			return NewRelayError("WithNodes", ErrInvalidConfig).
				WithContext("reason", "answer and tool node names are required")
		}
		if nodes.Answer == nodes.Tool {
			return NewRelayError("WithNodes", ErrInvalidConfig).
				WithContext("reason", "answer and tool nodes must differ")
		}
		cfg.nodes = nodes
		return nil
	}
}

// WithStreamMode sets the stream modes requested for each run
func WithStreamMode(modes ...string) Option {
	return func(cfg *internalConfig) error {
		if len(modes) == 0 {
			return fmt.Errorf("%w: at least one stream mode is required", ErrInvalidConfig)
		}
		cfg.streamMode = modes
		return nil
	}
}

// WithAssistantMetadata sets the metadata used to find the system assistant
func WithAssistantMetadata(metadata map[string]any) Option {
	return func(cfg *internalConfig) error {
		cfg.assistantMetadata = metadata
		return nil
	}
}

// WithArtifactMode forces artifact mode on or off
func WithArtifactMode(enabled bool) Option {
	return func(cfg *internalConfig) error {
		cfg.artifactMode = &enabled
		return nil
	}
}

// WithHistoryMode sets which messages are sent with each run
func WithHistoryMode(mode HistoryMode) Option {
	return func(cfg *internalConfig) error {
		if !mode.IsValid() {
			return fmt.Errorf("%w: unknown history mode %q", ErrInvalidConfig, mode)
		}
		cfg.historyMode = mode
		return nil
	}
}

// WithFeedbackSink sets where accepted ratings are sent
func WithFeedbackSink(sink feedback.Sink) Option {
	return func(cfg *internalConfig) error {
		cfg.feedbackSink = sink
		return nil
	}
}

// WithTranscriptStore persists every message keyed by thread id and
// restores transcripts when a session is resumed
func WithTranscriptStore(store storage.Store) Option {
	return func(cfg *internalConfig) error {
		cfg.transcript = store
		return nil
	}
}

// WithHooks sets the hook registry
func WithHooks(reg *hooks.Registry) Option {
	return func(cfg *internalConfig) error {
		cfg.hooks = reg
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger Logger) Option {
	return func(cfg *internalConfig) error {
		cfg.logger = logger
		return nil
	}
}
