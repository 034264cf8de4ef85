package agentrelay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/youssefsiam38/agentrelay/remote"
	"github.com/youssefsiam38/agentrelay/streaming"
	"github.com/youssefsiam38/agentrelay/types"
)

// fakeRun is the canned stream of one run
type fakeRun struct {
	events  []streaming.RawEvent
	failErr error // returned by Err after the events are replayed
	openErr error // returned by StreamRun
	block   chan struct{}
}

// fakeService replays one fakeRun per StreamRun call
type fakeService struct {
	mu         sync.Mutex
	assistants []types.Assistant
	searchErr  error
	createErr  error
	threads    []types.Thread
	runs       []fakeRun
	requests   []remote.RunRequest
	runThreads []string
}

func newFakeService(runs ...fakeRun) *fakeService {
	return &fakeService{
		assistants: []types.Assistant{{ID: "asst-1", GraphID: "agent", Metadata: map[string]any{"created_by": "system"}}},
		runs:       runs,
	}
}

func (f *fakeService) CreateThread(ctx context.Context) (types.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return types.Thread{}, f.createErr
	}
	thread := types.Thread{ID: uuid.NewString()}
	f.threads = append(f.threads, thread)
	return thread, nil
}

func (f *fakeService) SearchAssistants(ctx context.Context, metadata map[string]any, limit int) ([]types.Assistant, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.assistants, nil
}

func (f *fakeService) StreamRun(ctx context.Context, threadID string, run remote.RunRequest) (streaming.Source, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, run)
	f.runThreads = append(f.runThreads, threadID)
	if len(f.runs) == 0 {
		return nil, errors.New("no canned run left")
	}
	next := f.runs[0]
	f.runs = f.runs[1:]
	if next.openErr != nil {
		return nil, next.openErr
	}
	return &fakeSource{run: next}, nil
}

func (f *fakeService) lastRequest(t *testing.T) remote.RunRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("no run was requested")
	}
	return f.requests[len(f.requests)-1]
}

type fakeSource struct {
	run fakeRun
	pos int
	err error
}

func (s *fakeSource) Next() bool {
	if s.run.block != nil {
		<-s.run.block
		s.run.block = nil
	}
	if s.pos >= len(s.run.events) {
		s.err = s.run.failErr
		return false
	}
	s.pos++
	return true
}

func (s *fakeSource) Current() streaming.RawEvent { return s.run.events[s.pos-1] }
func (s *fakeSource) Err() error                  { return s.err }
func (s *fakeSource) Close() error                { return nil }

func metadataEvent(runID string) streaming.RawEvent {
	return streaming.RawEvent{Event: "metadata", Data: []byte(fmt.Sprintf(`{"run_id":%q}`, runID))}
}

func nodeEvent(node string) streaming.RawEvent {
	data := fmt.Sprintf(`{"msg-1":{"metadata":{"langgraph_node":%q}}}`, node)
	return streaming.RawEvent{Event: "messages/metadata", Data: []byte(data)}
}

func textEvent(content string) streaming.RawEvent {
	data := fmt.Sprintf(`[{"type":"AIMessageChunk","content":%q}]`, content)
	return streaming.RawEvent{Event: "messages/partial", Data: []byte(data)}
}

func artifactEvent(artifact string) streaming.RawEvent {
	data := fmt.Sprintf(`[{"type":"tool","content":"ok","artifact":%s}]`, artifact)
	return streaming.RawEvent{Event: "messages/complete", Data: []byte(data)}
}

// answerRun is a successful run answering text under runID
func answerRun(runID, text string) fakeRun {
	return fakeRun{events: []streaming.RawEvent{
		metadataEvent(runID),
		nodeEvent("agent"),
		textEvent(text),
	}}
}

func newTestClient(t *testing.T, svc *fakeService, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithService(svc)}, opts...)
	client, err := NewClient(Config{Endpoint: "https://agents.example.com", APIKey: "key"}, opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func newTestSession(t *testing.T, svc *fakeService, opts ...Option) *Session {
	t.Helper()
	s, err := newTestClient(t, svc, opts...).NewSession(context.Background())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}
