package service

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"

	"github.com/youssefsiam38/agentrelay"
	"github.com/youssefsiam38/agentrelay/streaming"
	"github.com/youssefsiam38/agentrelay/types"
)

// MessageView is one rendered chat message.
type MessageView struct {
	Role    string        `json:"role"`
	Content string        `json:"content"`
	HTML    template.HTML `json:"html"`
	RunID   string        `json:"run_id,omitempty"`
	CanRate bool          `json:"can_rate"`
	IsError bool          `json:"is_error"`
}

// LanguageOption is one entry of the language picker.
type LanguageOption struct {
	Code     string `json:"code"`
	Flag     string `json:"flag"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// ChatView is everything the chat page shows.
type ChatView struct {
	Messages  []MessageView    `json:"messages"`
	Welcome   string           `json:"welcome,omitempty"`
	Language  LanguageOption   `json:"language"`
	Languages []LanguageOption `json:"languages"`
	ThreadID  string           `json:"thread_id"`
	InFlight  bool             `json:"in_flight"`

	ArtifactMode bool   `json:"artifact_mode"`
	Artifact     string `json:"artifact,omitempty"`
}

// Message renders one message.
func (s *Service) Message(msg types.Message) MessageView {
	return MessageView{
		Role:    string(msg.Role),
		Content: msg.Content,
		HTML:    s.markdown.Render(msg.Content),
		RunID:   msg.RunID,
		CanRate: msg.CanRate(),
		IsError: msg.Role == types.RoleAssistant && strings.HasPrefix(msg.Content, streaming.ErrorPrefix),
	}
}

// Chat builds the chat page view of session in language lang.
// An unknown lang falls back to the default language.
func (s *Service) Chat(session *agentrelay.Session, lang string) ChatView {
	selected, err := agentrelay.LookupLanguage(lang)
	if err != nil {
		selected, _ = agentrelay.LookupLanguage(agentrelay.DefaultLanguage)
	}

	messages := session.Messages()
	view := ChatView{
		Messages:     make([]MessageView, 0, len(messages)),
		ThreadID:     session.Thread().ID,
		InFlight:     session.InFlight(),
		ArtifactMode: session.ArtifactMode(),
		Artifact:     PrettyJSON(session.Artifact()),
	}
	for _, msg := range messages {
		view.Messages = append(view.Messages, s.Message(msg))
	}
	// The greeting is only shown, never logged.
	if len(messages) == 0 {
		view.Welcome = selected.Welcome
	}

	for _, l := range agentrelay.Languages() {
		option := LanguageOption{Code: l.Code, Flag: l.Flag, Name: l.Name, Selected: l.Code == selected.Code}
		view.Languages = append(view.Languages, option)
		if option.Selected {
			view.Language = option
		}
	}
	return view
}

// PrettyJSON indents a raw JSON document for display. Empty input yields "".
func PrettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// LanguageCookie names the cookie remembering the picked language
const LanguageCookie = "agentrelay_lang"

// ResolveLanguage returns the first candidate that is a registered language
// code, or the default language.
func ResolveLanguage(candidates ...string) string {
	for _, code := range candidates {
		if code == "" {
			continue
		}
		if _, ok := agentrelay.GetLanguage(code); ok {
			return code
		}
	}
	return agentrelay.DefaultLanguage
}
