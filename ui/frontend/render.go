package frontend

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"time"
)

// renderer handles template rendering.
type renderer struct {
	baseTemplate *template.Template // Base template with layout and fragments
	templatesFS  fs.FS              // Embedded filesystem for page templates
	config       *Config
}

// newRenderer creates a new renderer.
func newRenderer(baseTemplate *template.Template, templatesFS fs.FS, cfg *Config) *renderer {
	return &renderer{
		baseTemplate: baseTemplate,
		templatesFS:  templatesFS,
		config:       cfg,
	}
}

// PageData contains common data for all pages.
type PageData struct {
	Title       string
	Subtitle    string
	BasePath    string
	CurrentPath string
	ReadOnly    bool
	Flash       *FlashMessage
	Data        any
}

// FlashMessage represents a flash message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// render renders a page template inside the base layout.
// It clones the base template and parses the page-specific template into it.
func (r *renderer) render(w http.ResponseWriter, req *http.Request, name string, flash *FlashMessage, data any) error {
	pageData := PageData{
		Title:       r.config.Title,
		Subtitle:    r.config.Subtitle,
		BasePath:    r.config.BasePath,
		CurrentPath: req.URL.Path,
		ReadOnly:    r.config.ReadOnly,
		Flash:       flash,
		Data:        data,
	}

	tmpl, err := r.baseTemplate.Clone()
	if err != nil {
		return fmt.Errorf("clone template: %w", err)
	}

	pageTemplatePath := "templates/" + name
	if _, err := tmpl.ParseFS(r.templatesFS, pageTemplatePath); err != nil {
		return fmt.Errorf("parse page template %s: %w", pageTemplatePath, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", pageData)
}

// Flash messages survive one redirect in a short-lived cookie.

const (
	flashCookie = "agentrelay_flash"
	flashMaxAge = 30 * time.Second
)

func setFlash(w http.ResponseWriter, path, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + ":" + message),
		Path:     path,
		MaxAge:   int(flashMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request, path string) *FlashMessage {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: path, MaxAge: -1})

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			return &FlashMessage{Type: value[:i], Message: value[i+1:]}
		}
	}
	return nil
}

// Template helper functions

func truncate(n int, s string) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func defaultVal(val, def any) any {
	if val == nil {
		return def
	}
	if s, ok := val.(string); ok && s == "" {
		return def
	}
	return val
}

// stars returns the raw scores of the five-point rating scale.
func stars() []int {
	return []int{0, 1, 2, 3, 4}
}
