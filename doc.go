// Package agentrelay relays chat prompts to a remote agent-execution service
// and reconstructs the streamed reply.
//
// A Client holds the shared configuration: the service endpoint, the
// feedback sink, hooks and the optional transcript store. Each chat user
// gets their own Session, which owns the conversation log, the active
// server-side thread and the feedback tracker. Sessions never share state.
//
// # Quick Start
//
//	client, err := agentrelay.NewClient(agentrelay.Config{
//	    Endpoint: "https://my-deployment.example.com",
//	    APIKey:   os.Getenv("API_KEY"),
//	},
//	    agentrelay.WithFeedbackSink(feedback.NewLangSmithSink(agentrelay.DefaultFeedbackURL, apiKey, nil)),
//	    agentrelay.WithLogger(slog.Default()),
//	)
//
//	session, err := client.NewSession(ctx)
//	msg, err := session.Submit(ctx, "Which heat pumps fit a small office?", "en", func(text string) {
//	    fmt.Print("\r", text)
//	})
//
// Submit only returns an error when the prompt could not be sent at all (an
// empty prompt, a run already in flight, a closed session). Failures while
// streaming are folded into the returned message, whose content then starts
// with streaming.ErrorPrefix; the session stays usable for the next prompt.
//
// # Feedback
//
// Ratings are attached to the run id of an assistant message:
//
//	if msg.CanRate() {
//	    outcome, err := session.Rate(ctx, msg.RunID, 4)
//	}
//
// A rating is forwarded only when the (run id, score) pair differs from the
// last one recorded in the session.
//
// # Artifacts
//
// Tool steps of the remote agent may attach a structured document to a run.
// It is kept only when artifact mode is enabled (WithArtifactMode, or by
// default when the endpoint is a local deployment) and is reset by the next
// prompt or by Clear.
//
// # Hooks
//
//	reg := hooks.NewRegistry()
//	hooks.NewLoggingHooks(logger).Register(reg)
//	client, _ := agentrelay.NewClient(cfg, agentrelay.WithHooks(reg))
package agentrelay
