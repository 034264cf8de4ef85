// Package api provides the JSON and SSE endpoints of the chat UI.
//
// Every request is expected to carry an agentrelay.Session in its context
// (see agentrelay.WithSession); the ui package installs it.
//
// # Endpoints
//
// Chat:
//   - POST /chat/stream - Submit a prompt; the reply streams back as SSE
//   - GET /chat - Current conversation view
//   - POST /chat/clear - Clear the conversation and start a new thread
//
// Feedback:
//   - POST /feedback - Rate an assistant reply (0-4 stars)
//
// Artifacts:
//   - GET /artifact - Artifact of the latest run (artifact mode only)
//
// # Stream events
//
// POST /chat/stream answers with text/event-stream:
//   - event: repaint  data: {"html": "..."} each time the answer changes
//   - event: done     data: the finalized message view plus "has_artifact"
//   - event: error    data: {"code": "...", "message": "..."} when the run could not start
package api
