// Package service provides the shared chat logic for the relay web UI.
//
// The service layer is HTTP-agnostic and used by both the JSON/SSE API and
// the SSR frontend handlers. It maps browser ids to agentrelay sessions and
// builds the view models both layers render.
//
// # Usage
//
//	svc := service.New(client, service.Config{IdleTimeout: 30 * time.Minute})
//
//	session, err := svc.Session(ctx, browserID)
//	view := svc.Chat(session, "fr")
//
// # Design
//
// The service layer:
//   - Gives every browser id its own isolated agentrelay.Session
//   - Evicts sessions idle for longer than the configured timeout
//   - Renders message markdown to sanitized HTML
package service
