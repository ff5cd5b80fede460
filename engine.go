package domloc

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/ZaguanLabs/domloc/dom"
)

// Engine walks a live document and rewrites translatable content in place.
// Every element is processed at most once per life of the engine, tracked
// through a weak node set so detached subtrees do not pin memory; the
// important-selector pass and explicit reprocessing bypass that gate.
type Engine struct {
	doc       *dom.Document
	resolver  TextResolver
	logger    *slog.Logger
	selectors []string
	excluded  map[string]bool
	attrs     []string
	locale    string
	stampLang bool
	processed *dom.NodeSet
	enabled   bool
}

// NewEngine builds a traversal engine over doc. Without WithResolver, a
// Resolver is assembled from the dictionary, cache, matcher, and locale
// options.
func NewEngine(doc *dom.Document, opts ...Option) *Engine {
	return newEngine(doc, newConfig(opts...))
}

func newEngine(doc *dom.Document, cfg *config) *Engine {
	resolver := cfg.resolver
	if resolver == nil {
		resolver = &Resolver{
			dict:     cfg.dict,
			cache:    cfg.cache,
			matchers: cfg.matchers,
			locale:   cfg.locale,
			logger:   cfg.logger,
		}
	}

	excluded := make(map[string]bool, len(cfg.excluded))
	for _, tag := range cfg.excluded {
		excluded[strings.ToLower(tag)] = true
	}

	return &Engine{
		doc:       doc,
		resolver:  resolver,
		logger:    cfg.logger,
		selectors: cfg.selectors,
		excluded:  excluded,
		attrs:     cfg.attrs,
		locale:    cfg.locale,
		stampLang: cfg.stampLang,
		processed: dom.NewNodeSet(),
		enabled:   cfg.enabled,
	}
}

// Document returns the document the engine is attached to.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// Enabled reports whether the engine reacts to passes and mutations.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// SetEnabled toggles all processing. A disabled engine ignores page passes
// and mutation batches; any watcher subscription stays attached, so enabling
// again needs no re-wiring.
func (e *Engine) SetEnabled(enabled bool) {
	e.enabled = enabled
}

// ProcessPage runs the initial two-pass translation. The configured
// important selectors are translated first and unconditionally, so page
// chrome stays correct across re-renders; the gated walk over the body then
// covers every remaining eligible element exactly once.
func (e *Engine) ProcessPage() Stats {
	var stats Stats
	if e == nil || e.doc == nil || !e.enabled {
		return stats
	}

	for _, selector := range e.selectors {
		for _, n := range e.doc.Find(selector) {
			if n.Type != html.ElementNode || !e.accept(n) {
				continue
			}
			stats.Rewritten += e.translateElement(n)
			e.processed.Add(n)
			stats.Important++
		}
	}

	body := e.doc.Body()
	if body == nil {
		e.logger.Debug("page pass skipped, no body")
		return stats
	}

	dom.Walk(body, e.accept, func(n *html.Node) {
		stats.Visited++
		if e.processed.Has(n) {
			return
		}
		stats.Rewritten += e.translateElement(n)
		e.processed.Add(n)
	})

	if e.stampLang {
		e.stampLangAttrs()
	}

	e.logger.Debug("page pass done",
		"important", stats.Important,
		"visited", stats.Visited,
		"rewritten", stats.Rewritten)
	return stats
}

// ProcessElement translates a single element and marks it processed. It is
// a no-op on nil or non-element nodes, excluded or opted-out elements, and
// elements already processed; it reports whether translation ran. This gate
// is what keeps an element from being rewritten twice within one traversal.
func (e *Engine) ProcessElement(n *html.Node) bool {
	if !e.enabled || !e.eligible(n) || e.processed.Has(n) {
		return false
	}
	e.translateElement(n)
	e.processed.Add(n)
	return true
}

// ReprocessElement translates an element even when it was already processed.
// The watcher uses it for character-data changes: edited text must be looked
// at again no matter what the processed set says.
func (e *Engine) ReprocessElement(n *html.Node) bool {
	if !e.enabled || !e.eligible(n) {
		return false
	}
	e.translateElement(n)
	e.processed.Add(n)
	return true
}

// ProcessTree processes n and then every eligible element below it. The
// watcher runs this for inserted subtrees so nested structure is covered,
// not just the inserted root.
func (e *Engine) ProcessTree(n *html.Node) {
	if !e.enabled || n == nil {
		return
	}
	if n.Type == html.ElementNode && !e.accept(n) {
		return
	}
	e.ProcessElement(n)
	dom.Walk(n, e.accept, func(c *html.Node) {
		e.ProcessElement(c)
	})
}

// eligible reports whether n is an element the engine may translate at all.
func (e *Engine) eligible(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && e.accept(n)
}

// accept gates elements for walking; rejecting cuts off the whole subtree.
func (e *Engine) accept(n *html.Node) bool {
	if e.excluded[strings.ToLower(n.Data)] {
		return false
	}
	if _, optedOut := dom.Attr(n, NoTranslateAttr); optedOut {
		return false
	}
	return true
}

// translateElement rewrites the translatable parts of n in place and returns
// the number of writes. Attributes are always handled first. For content,
// markup embedding an anchor or line break is translated as one serialized
// unit; otherwise a sole text child, or each direct text child, is handled
// individually. Writes happen only when the resolved form differs, which is
// what lets the engine observe its own mutations without looping.
func (e *Engine) translateElement(n *html.Node) int {
	writes := e.translateAttributes(n)

	if containsMarkupUnit(n) {
		return writes + e.translateMarkup(n)
	}
	if only := soleTextChild(n); only != nil {
		return writes + e.translateTextNode(only)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			writes += e.translateTextNode(c)
		}
	}
	return writes
}

func (e *Engine) translateAttributes(n *html.Node) int {
	writes := 0
	for _, name := range e.attrs {
		value, ok := dom.Attr(n, name)
		if !ok || value == "" {
			continue
		}
		if translated := e.resolver.Translate(value); translated != value {
			e.doc.SetAttr(n, name, translated)
			writes++
		}
	}
	return writes
}

// translateMarkup treats the element's serialized children as one lookup
// unit, so dictionary entries may carry inline markup like links.
func (e *Engine) translateMarkup(n *html.Node) int {
	markup, err := dom.InnerHTML(n)
	if err != nil || strings.TrimSpace(markup) == "" {
		return 0
	}
	translated := e.resolver.Translate(markup)
	if translated == markup {
		return 0
	}
	if err := e.doc.SetInnerHTML(n, translated); err != nil {
		e.logger.Debug("markup rewrite failed", "error", err)
		return 0
	}
	return 1
}

func (e *Engine) translateTextNode(n *html.Node) int {
	trimmed := strings.TrimSpace(n.Data)
	if trimmed == "" {
		return 0
	}
	translated := e.resolver.Translate(trimmed)
	if translated == trimmed {
		return 0
	}
	e.doc.SetText(n, preserveWhitespace(n.Data, translated))
	return 1
}

// containsMarkupUnit reports whether n's subtree embeds an anchor or line
// break, the signal that the whole innerHTML is the translatable unit.
func containsMarkupUnit(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch strings.ToLower(c.Data) {
		case "a", "br":
			return true
		}
		if containsMarkupUnit(c) {
			return true
		}
	}
	return false
}

// soleTextChild returns n's only child when that child is a text node.
func soleTextChild(n *html.Node) *html.Node {
	only := n.FirstChild
	if only != nil && only.NextSibling == nil && only.Type == html.TextNode {
		return only
	}
	return nil
}

// stampLangAttrs mirrors the target locale onto the root element.
func (e *Engine) stampLangAttrs() {
	if e.locale == "" {
		return
	}
	for _, n := range e.doc.Find("html") {
		lang := ToHTMLLang(e.locale)
		dir := GetDirection(e.locale)
		if cur, _ := dom.Attr(n, "lang"); cur != lang {
			e.doc.SetAttr(n, "lang", lang)
		}
		if cur, _ := dom.Attr(n, "dir"); cur != dir {
			e.doc.SetAttr(n, "dir", dir)
		}
		break
	}
}

// preserveWhitespace reapplies the original's leading and trailing
// whitespace around the translated text.
func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r"))
	leading := original[:leadingLen]

	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r"))
	trailing := ""
	if trailingLen > 0 {
		trailing = original[len(original)-trailingLen:]
	}

	return leading + translated + trailing
}
