package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/youssefsiam38/agentrelay/streaming"
	"github.com/youssefsiam38/agentrelay/types"
)

// StreamModeMessages asks the service for message events
const StreamModeMessages = "messages"

// Client talks to the agent-execution service
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. A nil httpClient
// uses http.DefaultClient; run streams are long-lived, so the client should
// not carry a short overall timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// InputMessage is one message of run input
type InputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RunInput is the graph input of a run
type RunInput struct {
	Messages []InputMessage `json:"messages"`
}

// RunConfig carries per-run configurable values
type RunConfig struct {
	Configurable map[string]any `json:"configurable,omitempty"`
}

// RunRequest is the body of a streamed run
type RunRequest struct {
	AssistantID string    `json:"assistant_id"`
	Input       RunInput  `json:"input"`
	StreamMode  []string  `json:"stream_mode"`
	Config      RunConfig `json:"config"`
}

type searchAssistantsRequest struct {
	Metadata map[string]any `json:"metadata,omitempty"`
	Limit    int            `json:"limit,omitempty"`
}

// CreateThread creates a new server-side thread
func (c *Client) CreateThread(ctx context.Context) (types.Thread, error) {
	var thread types.Thread
	if err := c.doJSON(ctx, http.MethodPost, "/threads", map[string]any{}, &thread); err != nil {
		return types.Thread{}, fmt.Errorf("create thread: %w", err)
	}
	if thread.ID == "" {
		return types.Thread{}, fmt.Errorf("create thread: response has no thread_id")
	}
	return thread, nil
}

// SearchAssistants lists assistants whose metadata matches
func (c *Client) SearchAssistants(ctx context.Context, metadata map[string]any, limit int) ([]types.Assistant, error) {
	var assistants []types.Assistant
	body := searchAssistantsRequest{Metadata: metadata, Limit: limit}
	if err := c.doJSON(ctx, http.MethodPost, "/assistants/search", body, &assistants); err != nil {
		return nil, fmt.Errorf("search assistants: %w", err)
	}
	return assistants, nil
}

// StreamRun starts a run on threadID and returns its event stream. The
// stream is bound to ctx and must be closed by the caller.
func (c *Client) StreamRun(ctx context.Context, threadID string, run RunRequest) (streaming.Source, error) {
	path := "/threads/" + url.PathEscape(threadID) + "/runs/stream"
	req, err := c.newRequest(ctx, http.MethodPost, path, run)
	if err != nil {
		return nil, fmt.Errorf("stream run: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stream run: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("stream run: %w", err)
	}
	if ct := strings.ToLower(resp.Header.Get("Content-Type")); ct != "" && !strings.HasPrefix(ct, "text/event-stream") {
		resp.Body.Close()
		return nil, fmt.Errorf("stream run: %w: %s", ErrNotEventStream, ct)
	}

	return newRunStream(resp), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
}
