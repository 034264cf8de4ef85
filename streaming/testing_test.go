package streaming

import (
	"encoding/json"
	"fmt"
)

// sliceSource replays canned events and optionally fails after failAfter events.
type sliceSource struct {
	events    []RawEvent
	pos       int
	failAfter int
	failErr   error
	err       error
	closed    bool
}

func newSliceSource(events ...RawEvent) *sliceSource {
	return &sliceSource{events: events, failAfter: -1}
}

func (s *sliceSource) Next() bool {
	if s.failAfter >= 0 && s.pos == s.failAfter {
		s.err = s.failErr
		return false
	}
	if s.pos >= len(s.events) {
		return false
	}
	s.pos++
	return true
}

func (s *sliceSource) Current() RawEvent { return s.events[s.pos-1] }
func (s *sliceSource) Err() error        { return s.err }
func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

func metadataEvent(runID string) RawEvent {
	return RawEvent{Event: "metadata", Data: []byte(fmt.Sprintf(`{"run_id":%q,"attempt":1}`, runID))}
}

func nodeEvent(node string) RawEvent {
	data := fmt.Sprintf(`{"msg-1":{"metadata":{"langgraph_node":%q,"langgraph_step":1}}}`, node)
	return RawEvent{Event: "messages/metadata", Data: []byte(data)}
}

func deltaEvent(kind, content string) RawEvent {
	data, err := json.Marshal([]map[string]any{{"type": kind, "content": content}})
	if err != nil {
		panic(err)
	}
	return RawEvent{Event: "messages/partial", Data: data}
}

func artifactEvent(artifact string) RawEvent {
	data := fmt.Sprintf(`[{"type":"tool","content":"done","artifact":%s}]`, artifact)
	return RawEvent{Event: "messages/complete", Data: []byte(data)}
}
