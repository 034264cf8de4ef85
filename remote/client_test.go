package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/youssefsiam38/agentrelay/streaming"
)

const sampleStream = "event: metadata\n" +
	"data: {\"run_id\":\"run-1\",\"attempt\":1}\n\n" +
	": heartbeat\n\n" +
	"event: messages/metadata\n" +
	"data: {\"m1\":{\"metadata\":{\"langgraph_node\":\"agent\"}}}\n\n" +
	"event: messages/partial\n" +
	"data: [{\"type\":\"AIMessageChunk\",\"content\":\"Hello\"}]\n\n" +
	"event: messages/partial\n" +
	"data: [{\"type\":\"AIMessageChunk\",\"content\":\"Hello there\"}]\n\n"

func newTestServer(t *testing.T, stream string) (*httptest.Server, *RunRequest) {
	t.Helper()

	var gotRun RunRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /threads", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"thread_id":"thread-1","created_at":"2024-05-01T10:00:00Z"}`))
	})
	mux.HandleFunc("POST /assistants/search", func(w http.ResponseWriter, r *http.Request) {
		var body searchAssistantsRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Metadata["created_by"] != "system" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"assistant_id":"asst-1","graph_id":"agent"}]`))
	})
	mux.HandleFunc("POST /threads/{id}/runs/stream", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "thread-1" {
			http.Error(w, "thread not found", http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotRun)
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, stream)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &gotRun
}

func TestClient_CreateThread(t *testing.T) {
	srv, _ := newTestServer(t, "")
	c := NewClient(srv.URL+"/", "key", srv.Client())

	thread, err := c.CreateThread(context.Background())
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}
	if thread.ID != "thread-1" {
		t.Errorf("ID = %q", thread.ID)
	}

	bad := NewClient(srv.URL, "wrong", srv.Client())
	if _, err := bad.CreateThread(context.Background()); !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("err = %v, want ErrUnexpectedStatus", err)
	}
}

func TestClient_SearchAssistants(t *testing.T) {
	srv, _ := newTestServer(t, "")
	c := NewClient(srv.URL, "key", srv.Client())

	assistants, err := c.SearchAssistants(context.Background(), map[string]any{"created_by": "system"}, 1)
	if err != nil {
		t.Fatalf("SearchAssistants failed: %v", err)
	}
	if len(assistants) != 1 || assistants[0].ID != "asst-1" {
		t.Errorf("assistants = %+v", assistants)
	}
}

func TestClient_StreamRun(t *testing.T) {
	srv, gotRun := newTestServer(t, sampleStream)
	c := NewClient(srv.URL, "key", srv.Client())

	src, err := c.StreamRun(context.Background(), "thread-1", RunRequest{
		AssistantID: "asst-1",
		Input:       RunInput{Messages: []InputMessage{{Role: "human", Content: "hi"}}},
		StreamMode:  []string{StreamModeMessages},
		Config:      RunConfig{Configurable: map[string]any{"locality": "fr"}},
	})
	if err != nil {
		t.Fatalf("StreamRun failed: %v", err)
	}

	res := streaming.Interpret(src, streaming.DefaultNodes, nil)
	if res.Err != nil {
		t.Fatalf("unexpected stream error: %v", res.Err)
	}
	if res.Message.Content != "Hello there" || res.Message.RunID != "run-1" {
		t.Errorf("Message = %+v", res.Message)
	}

	if gotRun.AssistantID != "asst-1" || gotRun.StreamMode[0] != "messages" {
		t.Errorf("run request = %+v", gotRun)
	}
	if gotRun.Config.Configurable["locality"] != "fr" {
		t.Errorf("locality = %v", gotRun.Config.Configurable["locality"])
	}
}

func TestClient_StreamRunErrorEvent(t *testing.T) {
	stream := sampleStream +
		"event: error\n" +
		"data: {\"error\":\"ValueError\",\"message\":\"graph exploded\"}\n\n"
	srv, _ := newTestServer(t, stream)
	c := NewClient(srv.URL, "key", srv.Client())

	src, err := c.StreamRun(context.Background(), "thread-1", RunRequest{AssistantID: "asst-1"})
	if err != nil {
		t.Fatalf("StreamRun failed: %v", err)
	}

	res := streaming.Interpret(src, streaming.DefaultNodes, nil)
	if !errors.Is(res.Err, ErrRunFailed) {
		t.Fatalf("Err = %v, want ErrRunFailed", res.Err)
	}
	if !strings.Contains(res.Message.Content, "ValueError: graph exploded") {
		t.Errorf("Content = %q", res.Message.Content)
	}
	if res.Message.RunID != "run-1" {
		t.Errorf("RunID = %q", res.Message.RunID)
	}
}

func TestClient_StreamRunUnknownThread(t *testing.T) {
	srv, _ := newTestServer(t, sampleStream)
	c := NewClient(srv.URL, "key", srv.Client())

	_, err := c.StreamRun(context.Background(), "missing", RunRequest{})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("err = %v, want ErrUnexpectedStatus", err)
	}
}

func TestClient_StreamRunRequiresEventStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	if _, err := c.StreamRun(context.Background(), "t", RunRequest{}); !errors.Is(err, ErrNotEventStream) {
		t.Errorf("err = %v, want ErrNotEventStream", err)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := map[string]string{
		`{"error":"ValueError","message":"bad"}`: "ValueError: bad",
		`{"message":"only message"}`:             "only message",
		`{"error":"Timeout"}`:                    "Timeout",
		``:                                       "unknown error",
		`plain text`:                             "plain text",
	}
	for data, want := range tests {
		if got := errorMessage([]byte(data)); got != want {
			t.Errorf("errorMessage(%q) = %q, want %q", data, got, want)
		}
	}
}
