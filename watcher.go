package domloc

import (
	"golang.org/x/net/html"

	"github.com/ZaguanLabs/domloc/dom"
)

// Watcher feeds document mutations into an Engine. It subscribes to
// child-list and character-data changes under the body and reacts to each
// delivered batch synchronously.
//
// The engine's own rewrites come back through the same subscription in the
// following batch. They settle instead of looping because translation is
// idempotent on its own output and the engine only writes when a resolution
// changes the content.
type Watcher struct {
	engine *Engine
	obs    *dom.Observer
}

// NewWatcher creates a watcher for the engine. Call Start to attach it.
func NewWatcher(engine *Engine) *Watcher {
	return &Watcher{engine: engine}
}

// Start attaches the mutation subscription. Starting an attached watcher is
// a no-op.
func (w *Watcher) Start() error {
	if w.obs != nil {
		return nil
	}
	body := w.engine.doc.Body()
	if body == nil {
		return &InitError{Message: "document has no body"}
	}
	w.obs = w.engine.doc.Observe(body, dom.Options{
		ChildList:     true,
		CharacterData: true,
		Subtree:       true,
	}, w.handle)
	return nil
}

// Stop detaches the subscription. The engine and its processed state are
// untouched, so a later Start resumes where it left off.
func (w *Watcher) Stop() {
	if w.obs != nil {
		w.obs.Disconnect()
		w.obs = nil
	}
}

// Running reports whether the watcher is attached.
func (w *Watcher) Running() bool {
	return w.obs != nil
}

func (w *Watcher) handle(batch []dom.Mutation) {
	if !w.engine.Enabled() {
		return
	}
	for _, m := range batch {
		switch m.Type {
		case dom.ChildList:
			for _, n := range m.Added {
				if n.Type == html.ElementNode {
					w.engine.ProcessTree(n)
				}
			}
		case dom.CharacterData:
			// Text edits bypass the processed gate: the parent was handled
			// before, but its content is new.
			if p := m.Target.Parent; p != nil && p.Type == html.ElementNode {
				w.engine.ReprocessElement(p)
			}
		}
	}
}
