package agentrelay

import (
	"fmt"
	"sync"
)

// DefaultLanguage is the language used when none is selected
const DefaultLanguage = "en"

// Language is a locality the remote agent can answer in
type Language struct {
	// Code is sent to the agent as the run locality (required)
	Code string

	// Flag is the short label shown in the language picker
	Flag string

	// Name is the human-readable language name
	Name string

	// Welcome is the greeting shown while a conversation is empty (required)
	Welcome string
}

// Validate validates the language definition
func (l *Language) Validate() error {
	if l.Code == "" {
		return fmt.Errorf("%w: language code is required", ErrInvalidConfig)
	}
	if l.Welcome == "" {
		return fmt.Errorf("%w: welcome message is required for %q", ErrInvalidConfig, l.Code)
	}
	return nil
}

// Global language registry, in registration order
var (
	languagesMu sync.RWMutex
	languages   = make(map[string]Language)
	langOrder   []string
)

func init() {
	for _, l := range builtinLanguages {
		MustRegisterLanguage(l)
	}
}

var builtinLanguages = []Language{
	{
		Code:    "en",
		Flag:    "🇬🇧",
		Name:    "English",
		Welcome: "Hello! I'm your AI assistant specialized in climate-tech solutions. How can I assist you today in discovering innovative and sustainable technologies?",
	},
	{
		Code:    "fr",
		Flag:    "🇫🇷",
		Name:    "Français",
		Welcome: "Bonjour ! Je suis votre assistant IA spécialisé dans les solutions de technologie climatique. Comment puis-je vous aider aujourd'hui à découvrir des technologies innovantes et durables ?",
	},
	{
		Code:    "it",
		Flag:    "🇮🇹",
		Name:    "Italiano",
		Welcome: "Ciao! Sono il tuo assistente AI specializzato in soluzioni tecnologiche per il clima. Come posso aiutarti oggi a scoprire tecnologie innovative e sostenibili?",
	},
	{
		Code:    "de",
		Flag:    "🇩🇪",
		Name:    "Deutsch",
		Welcome: "Hallo! Ich bin Ihr KI-Assistent, spezialisiert auf Klimatechnologien. Wie kann ich Ihnen heute helfen, innovative und nachhaltige Technologien zu entdecken?",
	},
}

// RegisterLanguage adds a language to the picker.
// This should be called at package init time before serving requests.
//
// Example:
//
//	func init() {
//	    agentrelay.RegisterLanguage(agentrelay.Language{
//	        Code:    "es",
//	        Flag:    "🇪🇸",
//	        Name:    "Español",
//	        Welcome: "¡Hola! ¿En qué puedo ayudarte hoy?",
//	    })
//	}
func RegisterLanguage(l Language) error {
	if err := l.Validate(); err != nil {
		return err
	}

	languagesMu.Lock()
	defer languagesMu.Unlock()

	if _, exists := languages[l.Code]; exists {
		return fmt.Errorf("%w: language %q already registered", ErrInvalidConfig, l.Code)
	}

	languages[l.Code] = l
	langOrder = append(langOrder, l.Code)
	return nil
}

// MustRegisterLanguage is like RegisterLanguage but panics on error.
func MustRegisterLanguage(l Language) {
	if err := RegisterLanguage(l); err != nil {
		panic(err)
	}
}

// GetLanguage returns a registered language by code.
func GetLanguage(code string) (Language, bool) {
	languagesMu.RLock()
	defer languagesMu.RUnlock()

	l, ok := languages[code]
	return l, ok
}

// LookupLanguage is like GetLanguage but falls back to DefaultLanguage for
// an empty code and reports unknown codes as ErrUnknownLanguage.
func LookupLanguage(code string) (Language, error) {
	if code == "" {
		code = DefaultLanguage
	}
	l, ok := GetLanguage(code)
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return l, nil
}

// Languages returns all registered languages in registration order.
func Languages() []Language {
	languagesMu.RLock()
	defer languagesMu.RUnlock()

	out := make([]Language, 0, len(langOrder))
	for _, code := range langOrder {
		out = append(out, languages[code])
	}
	return out
}

// resetLanguages restores the built-in languages. Used by tests.
func resetLanguages() {
	languagesMu.Lock()
	languages = make(map[string]Language)
	langOrder = nil
	languagesMu.Unlock()

	for _, l := range builtinLanguages {
		MustRegisterLanguage(l)
	}
}
