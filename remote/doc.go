// Package remote is an HTTP client for the stateful agent-execution service.
//
// It covers the three calls a chat session needs: discovering the
// system-owned assistant, creating threads, and opening a streamed run whose
// server-sent events are exposed as a streaming.Source.
//
//	c := remote.NewClient(endpoint, apiKey, nil)
//	assistants, _ := c.SearchAssistants(ctx, map[string]any{"created_by": "system"}, 1)
//	thread, _ := c.CreateThread(ctx)
//	src, _ := c.StreamRun(ctx, thread.ID, remote.RunRequest{...})
//	result := streaming.Interpret(src, streaming.DefaultNodes, nil)
package remote
