// Package ui provides an embedded chat web UI for agentrelay.
//
// The package provides a single HTTP handler serving the server-rendered
// chat page, its static assets and the JSON/SSE endpoints the page uses to
// stream replies:
//   - UIHandler: chat page plus /api routes
//
// # Quick Start
//
//	client, _ := agentrelay.NewClient(agentrelay.Config{
//	    Endpoint: os.Getenv("LANGGRAPH_CLOUD_ENDPOINT"),
//	    APIKey:   os.Getenv("API_KEY"),
//	})
//
//	http.Handle("/", ui.UIHandler(client, nil))
//	http.ListenAndServe(":8501", nil)
//
// # Sessions
//
// Each browser is identified by an HttpOnly cookie and gets its own
// agentrelay.Session. Opening the page with ?thread_id=<id> continues an
// existing thread. Sessions idle for longer than Config.IdleTimeout are
// closed.
//
// # Configuration
//
//	cfg := &ui.Config{
//	    Title:       "Solutions Assistant",
//	    Subtitle:    "Ask about clean and profitable solutions",
//	    IdleTimeout: time.Hour,
//	    Logger:      slog.Default(),
//	}
//
// # Mounting
//
// The handler returns standard http.Handler, compatible with any Go framework:
//
//	http.Handle("/chat/", http.StripPrefix("/chat", ui.UIHandler(client, &ui.Config{BasePath: "/chat"})))
package ui
