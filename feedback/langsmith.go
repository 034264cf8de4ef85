package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/youssefsiam38/agentrelay/types"
)

// DefaultLangSmithURL is the feedback API used when none is configured
const DefaultLangSmithURL = "https://eu.api.smith.langchain.com"

// LangSmithSink posts feedback records to a LangSmith-compatible feedback API
type LangSmithSink struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLangSmithSink creates a sink posting to baseURL. A nil httpClient
// gets a client with a 10 second timeout.
func NewLangSmithSink(baseURL, apiKey string, httpClient *http.Client) *LangSmithSink {
	if baseURL == "" {
		baseURL = DefaultLangSmithURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &LangSmithSink{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type feedbackSource struct {
	Type string `json:"type"`
}

type createFeedbackRequest struct {
	ID             string         `json:"id"`
	RunID          string         `json:"run_id"`
	Key            string         `json:"key"`
	Score          float64        `json:"score"`
	Comment        string         `json:"comment"`
	FeedbackSource feedbackSource `json:"feedback_source"`
}

// Send implements Sink
func (s *LangSmithSink) Send(ctx context.Context, record types.FeedbackRecord) error {
	payload, err := json.Marshal(createFeedbackRequest{
		ID:             record.ID,
		RunID:          record.RunID,
		Key:            record.Key,
		Score:          record.Score,
		Comment:        record.Comment,
		FeedbackSource: feedbackSource{Type: "api"},
	})
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/feedback", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build feedback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("post feedback: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
