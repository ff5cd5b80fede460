package domloc

import "github.com/ZaguanLabs/domloc/dom"

// ExtractKeys returns the dictionary keys the engine would look up for doc,
// deduplicated and in first-seen document order: attribute values, markup
// units, and trimmed text content, under the same element rules the live
// engine applies. The usual workflow feeds the result to the dict package's
// diff and builder.
func ExtractKeys(doc *dom.Document, opts ...Option) []string {
	if doc == nil {
		return nil
	}
	cfg := newConfig(opts...)

	rec := &keyRecorder{seen: make(map[string]bool)}
	cfg.resolver = rec
	cfg.cache = nil
	cfg.stampLang = false
	cfg.enabled = true

	newEngine(doc, cfg).ProcessPage()
	return rec.keys
}

// keyRecorder is a pass-through resolver that remembers every lookup. With
// it installed a page pass performs no writes, so extraction leaves the
// document untouched.
type keyRecorder struct {
	seen map[string]bool
	keys []string
}

func (r *keyRecorder) Translate(text string) string {
	if text != "" && !r.seen[text] {
		r.seen[text] = true
		r.keys = append(r.keys, text)
	}
	return text
}
