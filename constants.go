package agentrelay

import (
	"net/url"
	"strings"
)

// Version is the current agentrelay version
const Version = "1.0.0"

const (
	// DefaultFeedbackURL is the LangSmith API region used for feedback
	DefaultFeedbackURL = "https://eu.api.smith.langchain.com"

	// DefaultAssistantSearchLimit bounds the system assistant lookup
	DefaultAssistantSearchLimit = 10
)

// DefaultAssistantMetadata selects the system-owned assistant
func DefaultAssistantMetadata() map[string]any {
	return map[string]any{"created_by": "system"}
}

// HistoryMode controls which messages are sent with each run.
type HistoryMode string

const (
	// HistoryLatest sends only the new prompt; the server thread holds the history.
	HistoryLatest HistoryMode = "latest"

	// HistoryFull sends the whole conversation log.
	HistoryFull HistoryMode = "full"
)

// String returns the string representation of the history mode.
func (m HistoryMode) String() string {
	return string(m)
}

// IsValid reports whether m is a known history mode.
func (m HistoryMode) IsValid() bool {
	return m == HistoryLatest || m == HistoryFull
}

// IsLocalEndpoint reports whether endpoint points at a local deployment.
// Artifact mode is enabled by default for local deployments.
func IsLocalEndpoint(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return strings.Contains(endpoint, "localhost")
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
