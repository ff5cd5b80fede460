package domloc

import "strings"

// TemplateMatch is the decomposition of a source string against one template
// shape.
type TemplateMatch struct {
	Prefix string // Text before the ", " separator
	Name   string // The variable segment captured from the input
	Suffix string // "!" and everything after it, or empty
}

// Matcher recognizes one parameterized template shape in free-form text.
// Matchers run in order; the first whose generalized key has a dictionary
// entry wins, and a shape match without an entry falls through to the
// verbatim lookup.
type Matcher interface {
	// Match decomposes text, reporting false when it does not fit the shape.
	Match(text string) (TemplateMatch, bool)

	// Key returns the generalized dictionary key for a match.
	Key(m TemplateMatch) string

	// Expand substitutes the captured name back into a dictionary value.
	Expand(value string, m TemplateMatch) string
}

// DisplayNameMatcher matches greeting-like strings of the shape
// "<prefix>, <name><suffix>": the split happens at the last ", ", the name
// runs to the first "!" and must be non-empty, and the suffix is everything
// from that "!" on (possibly nothing). The shape is deliberately loose; a
// false positive costs one extra dictionary lookup and then falls through.
type DisplayNameMatcher struct{}

func (DisplayNameMatcher) Match(text string) (TemplateMatch, bool) {
	i := strings.LastIndex(text, ", ")
	if i < 0 {
		return TemplateMatch{}, false
	}

	rest := text[i+2:]
	name, suffix := rest, ""
	if bang := strings.IndexByte(rest, '!'); bang >= 0 {
		name, suffix = rest[:bang], rest[bang:]
	}
	if name == "" {
		return TemplateMatch{}, false
	}

	return TemplateMatch{Prefix: text[:i], Name: name, Suffix: suffix}, true
}

func (DisplayNameMatcher) Key(m TemplateMatch) string {
	return m.Prefix + ", " + PlaceholderToken + m.Suffix
}

// Expand replaces the first placeholder occurrence so a name containing the
// token text cannot cascade.
func (DisplayNameMatcher) Expand(value string, m TemplateMatch) string {
	return strings.Replace(value, PlaceholderToken, m.Name, 1)
}

// DefaultMatchers returns the matcher set used when none are configured.
func DefaultMatchers() []Matcher {
	return []Matcher{DisplayNameMatcher{}}
}

// Verify DisplayNameMatcher implements Matcher
var _ Matcher = DisplayNameMatcher{}
