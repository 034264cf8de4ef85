package agentrelay

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the required configuration for a client.
//
// Example:
//
//	client, _ := agentrelay.NewClient(agentrelay.Config{
//	    Endpoint: "https://my-deployment.example.com",
//	    APIKey:   os.Getenv("API_KEY"),
//	})
type Config struct {
	// Endpoint is the base URL of the agent-execution service (required)
	Endpoint string

	// APIKey authenticates against the service (required)
	APIKey string
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("%w: Endpoint is required", ErrInvalidConfig)
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: Endpoint must be an absolute http(s) URL, got %q", ErrInvalidConfig, c.Endpoint)
	}

	if c.APIKey == "" {
		return fmt.Errorf("%w: APIKey is required", ErrInvalidConfig)
	}

	return nil
}

// Environment variables overriding FileConfig values
const (
	EnvEndpoint    = "LANGGRAPH_CLOUD_ENDPOINT"
	EnvAPIKey      = "API_KEY"
	EnvFeedbackURL = "LANGSMITH_ENDPOINT"
	EnvDatabaseURL = "DATABASE_URL"
)

// FileConfig is the deployment configuration of a relay front-end,
// read from YAML.
//
//	endpoint: https://my-deployment.example.com
//	feedback_url: https://eu.api.smith.langchain.com
//	listen_addr: ":8501"
//	environment: production
//	history_mode: latest
type FileConfig struct {
	Endpoint    string `yaml:"endpoint"`
	APIKey      string `yaml:"api_key"`
	FeedbackURL string `yaml:"feedback_url"`
	ListenAddr  string `yaml:"listen_addr"`
	Environment string `yaml:"environment"`
	HistoryMode string `yaml:"history_mode"`
	DatabaseURL string `yaml:"database_url"`

	// ArtifactMode overrides the local-endpoint default when set
	ArtifactMode *bool `yaml:"artifact_mode"`
}

// LoadFileConfig reads path (if non-empty) and applies environment
// overrides. Secrets are expected in the environment; the file may omit them.
func LoadFileConfig(path string) (*FileConfig, error) {
	fc := &FileConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	fc.applyEnv(os.LookupEnv)
	fc.applyDefaults()

	if !HistoryMode(fc.HistoryMode).IsValid() {
		return nil, fmt.Errorf("%w: unknown history_mode %q", ErrInvalidConfig, fc.HistoryMode)
	}
	return fc, nil
}

func (fc *FileConfig) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		fc.Endpoint = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		fc.APIKey = v
	}
	if v, ok := lookup(EnvFeedbackURL); ok && v != "" {
		fc.FeedbackURL = v
	}
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		fc.DatabaseURL = v
	}
	if v, ok := lookup("ARTIFACT_MODE"); ok && v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			fc.ArtifactMode = &enabled
		}
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.FeedbackURL == "" {
		fc.FeedbackURL = DefaultFeedbackURL
	}
	if fc.ListenAddr == "" {
		fc.ListenAddr = ":8501"
	}
	if fc.Environment == "" {
		fc.Environment = "production"
	}
	if fc.HistoryMode == "" {
		fc.HistoryMode = string(HistoryLatest)
	}
}

// Config returns the client configuration part of fc
func (fc *FileConfig) Config() Config {
	return Config{Endpoint: fc.Endpoint, APIKey: fc.APIKey}
}

// IsDevelopment reports whether fc targets a development environment
func (fc *FileConfig) IsDevelopment() bool {
	return fc.Environment == "development"
}
