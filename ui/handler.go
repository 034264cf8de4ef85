package ui

import (
	"net/http"

	"github.com/youssefsiam38/agentrelay"
	"github.com/youssefsiam38/agentrelay/ui/api"
	"github.com/youssefsiam38/agentrelay/ui/frontend"
	"github.com/youssefsiam38/agentrelay/ui/service"
)

// UIHandler returns an http.Handler serving the chat page and its API.
//
// Usage:
//
//	http.Handle("/", ui.UIHandler(client, cfg))
//	http.Handle("/chat/", http.StripPrefix("/chat", ui.UIHandler(client, &ui.Config{BasePath: "/chat"})))
func UIHandler(client *agentrelay.Client, cfg *Config) http.Handler {
	if client == nil {
		panic(ErrClientRequired.Error())
	}
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg.applyDefaults()
	}

	// Validate configuration (panic on invalid config as this is a programmer error)
	if err := cfg.validate(); err != nil {
		panic("ui: invalid configuration: " + err.Error())
	}

	svc := service.New(client, service.Config{
		IdleTimeout: cfg.IdleTimeout,
		Logger:      cfg.Logger,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", api.NewRouter(svc, &api.Config{
		ReadOnly: cfg.ReadOnly,
		Logger:   cfg.Logger,
	})))
	mux.Handle("/", frontend.NewRouter(svc, &frontend.Config{
		BasePath: cfg.BasePath,
		Title:    cfg.Title,
		Subtitle: cfg.Subtitle,
		ReadOnly: cfg.ReadOnly,
		Logger:   cfg.Logger,
	}))

	return newSessionMiddleware(svc, cfg).wrap(mux)
}
