package domloc

import (
	"context"

	"github.com/ZaguanLabs/domloc/dom"
)

// Start wires a complete localizer over a live document: it loads the
// dictionary, runs the initial page pass, and attaches a change watcher.
//
// A dictionary load failure is logged and leaves the engine in permanent
// pass-through mode; the page keeps working untranslated and the load is not
// retried. Structural problems (nil document, missing body) return an
// InitError and attach nothing.
func Start(ctx context.Context, doc *dom.Document, opts ...Option) (*Engine, *Watcher, error) {
	cfg := newConfig(opts...)

	if doc == nil {
		return nil, nil, &InitError{Message: "nil document"}
	}
	if doc.Body() == nil {
		return nil, nil, &InitError{Message: "document has no body"}
	}

	if cfg.dict == nil && cfg.source != nil {
		dict, err := cfg.source.Load(ctx)
		if err != nil {
			cfg.logger.Error("dictionary load failed, continuing in pass-through mode", "error", err)
		} else {
			cfg.dict = dict
		}
	}

	engine := newEngine(doc, cfg)
	engine.ProcessPage()

	watcher := NewWatcher(engine)
	if err := watcher.Start(); err != nil {
		return nil, nil, err
	}
	return engine, watcher, nil
}
