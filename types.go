package domloc

import "context"

// Dictionary is the static source-to-target mapping loaded at startup. Keys
// are exact source strings or template strings carrying the literal
// PlaceholderToken. Values must not themselves appear as keys: lookups have
// to miss on already translated text, which is what lets the change watcher
// settle after reacting to the engine's own rewrites.
type Dictionary map[string]string

// PlaceholderToken marks the variable segment in template keys, for example
// "Welcome, {displayName}!".
const PlaceholderToken = "{displayName}"

// Resolution is a recorded lookup outcome. Found is false for misses, so
// repeated lookups of untranslatable text skip the dictionary entirely.
type Resolution struct {
	Text  string `json:"text"`
	Found bool   `json:"found"`
}

// Cache stores resolution outcomes keyed by hashed source text. Entries
// expire; an expired entry reads as a miss.
type Cache interface {
	// Get retrieves a cached resolution, reporting false when the key is
	// absent or expired.
	Get(key string) (Resolution, bool)

	// Set stores a resolution under key with the current time.
	Set(key string, value Resolution) error
}

// TextResolver resolves a source string to its display form. Implementations
// must be idempotent on their own output and must never fail: unknown input
// passes through unchanged.
type TextResolver interface {
	Translate(text string) string
}

// Source loads a dictionary from an external resource. It is consulted once
// during Start; a failed load leaves the engine in pass-through mode and is
// not retried.
type Source interface {
	Load(ctx context.Context) (Dictionary, error)
}

// Provider is the interface to machine-translation backends used by the
// dictionary build tooling. Implementations return exactly one translation
// per input text, in order.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) ([]string, error)
}

// TranslateRequest is one batch of source strings for a Provider.
type TranslateRequest struct {
	Texts         []string // Source strings, translated independently
	SourceLocale  string   // Source language code (default: "en")
	TargetLocale  string   // Target language code (e.g. "uk_UA")
	Context       string   // Site or page context for disambiguation
	ExcludedTerms []string // Terms to keep verbatim (brand names, placeholders)
}

// Stats summarizes one full page pass.
type Stats struct {
	Important int // Elements handled by the selector pass
	Visited   int // Elements visited by the tree walk
	Rewritten int // Text, markup, and attribute writes performed
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// DefaultExcludedTags are element names whose subtrees are never translated.
var DefaultExcludedTags = []string{
	"script",
	"style",
	"meta",
	"link",
	"code",
	"pre",
	"textarea",
	"noscript",
}

// DefaultAttributes are the attribute names whose values are translated.
var DefaultAttributes = []string{
	"placeholder",
	"title",
	"alt",
	"aria-label",
}

// NoTranslateAttr opts an element and its whole subtree out of translation.
const NoTranslateAttr = "data-no-translate"
