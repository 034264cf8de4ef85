package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/youssefsiam38/agentrelay/remote"
	"github.com/youssefsiam38/agentrelay/streaming"
	"github.com/youssefsiam38/agentrelay/types"
)

// FakeRun is the canned event stream of one run
type FakeRun struct {
	Events  []streaming.RawEvent
	FailErr error // reported after Events are replayed
	OpenErr error // returned by StreamRun
}

// FakeService is an in-memory agent-execution service that replays one
// FakeRun per StreamRun call
type FakeService struct {
	mu         sync.Mutex
	Assistants []types.Assistant
	CreateErr  error
	runs       []FakeRun
	requests   []remote.RunRequest
}

// NewFakeService creates a service with one system assistant
func NewFakeService(runs ...FakeRun) *FakeService {
	return &FakeService{
		Assistants: []types.Assistant{{ID: "asst-1", GraphID: "agent"}},
		runs:       runs,
	}
}

// Enqueue appends runs to the replay queue
func (f *FakeService) Enqueue(runs ...FakeRun) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, runs...)
}

// Requests returns the run requests received so far
func (f *FakeService) Requests() []remote.RunRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remote.RunRequest(nil), f.requests...)
}

// CreateThread returns a thread with a random id
func (f *FakeService) CreateThread(ctx context.Context) (types.Thread, error) {
	if f.CreateErr != nil {
		return types.Thread{}, f.CreateErr
	}
	return types.Thread{ID: uuid.NewString()}, nil
}

// SearchAssistants returns the configured assistants
func (f *FakeService) SearchAssistants(ctx context.Context, metadata map[string]any, limit int) ([]types.Assistant, error) {
	return f.Assistants, nil
}

// StreamRun replays the next queued run
func (f *FakeService) StreamRun(ctx context.Context, threadID string, run remote.RunRequest) (streaming.Source, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, run)
	if len(f.runs) == 0 {
		return nil, errors.New("no run queued")
	}
	next := f.runs[0]
	f.runs = f.runs[1:]
	if next.OpenErr != nil {
		return nil, next.OpenErr
	}
	return &fakeSource{run: next}, nil
}

type fakeSource struct {
	run FakeRun
	pos int
	err error
}

func (s *fakeSource) Next() bool {
	if s.pos >= len(s.run.Events) {
		s.err = s.run.FailErr
		return false
	}
	s.pos++
	return true
}

func (s *fakeSource) Current() streaming.RawEvent { return s.run.Events[s.pos-1] }
func (s *fakeSource) Err() error                  { return s.err }
func (s *fakeSource) Close() error                { return nil }

// AnswerRun streams the cumulative deltas of an answer under runID.
// A non-empty artifact is attached by the tool node first.
func AnswerRun(runID string, artifact string, deltas ...string) FakeRun {
	events := []streaming.RawEvent{
		{Event: "metadata", Data: []byte(fmt.Sprintf(`{"run_id":%q}`, runID))},
	}
	if artifact != "" {
		events = append(events,
			streaming.RawEvent{Event: "messages/metadata", Data: []byte(`{"m0":{"metadata":{"langgraph_node":"tools"}}}`)},
			streaming.RawEvent{Event: "messages/complete", Data: []byte(fmt.Sprintf(`[{"type":"tool","content":"","artifact":%s}]`, artifact))},
		)
	}
	events = append(events, streaming.RawEvent{Event: "messages/metadata", Data: []byte(`{"m1":{"metadata":{"langgraph_node":"agent"}}}`)})
	for _, delta := range deltas {
		events = append(events, streaming.RawEvent{
			Event: "messages/partial",
			Data:  []byte(fmt.Sprintf(`[{"type":"AIMessageChunk","content":%q}]`, delta)),
		})
	}
	return FakeRun{Events: events}
}
