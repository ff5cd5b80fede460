package dom

import "golang.org/x/net/html"

// MutationType identifies the kind of tree change a Mutation describes.
type MutationType string

const (
	// ChildList records children added to or removed from Target.
	ChildList MutationType = "childList"
	// CharacterData records a data change on the text node Target.
	CharacterData MutationType = "characterData"
	// Attributes records an attribute change on the element Target.
	Attributes MutationType = "attributes"
)

// Mutation is one recorded tree change. Target is the parent element for
// childList records, the text node for characterData records, and the
// element for attribute records.
type Mutation struct {
	Type     MutationType
	Target   *html.Node
	Added    []*html.Node
	Removed  []*html.Node
	Attr     string
	OldValue string
}

// Options selects which mutation records an observer receives. Subtree
// extends the scope from the observed node itself to all of its descendants.
type Options struct {
	ChildList     bool
	CharacterData bool
	Attributes    bool
	Subtree       bool
}

// Callback receives one batch of mutation records.
type Callback func(batch []Mutation)

// Observer is an active mutation subscription on a Document.
type Observer struct {
	doc      *Document
	target   *html.Node
	opts     Options
	callback Callback
	active   bool
}

// Observe subscribes cb to mutations on target. Records are queued as
// mutators run and delivered when the host calls Flush.
func (d *Document) Observe(target *html.Node, opts Options, cb Callback) *Observer {
	obs := &Observer{doc: d, target: target, opts: opts, callback: cb, active: true}
	d.observers = append(d.observers, obs)
	return obs
}

// Disconnect stops delivery to the observer. Records queued before the call
// are still discarded, not delivered.
func (o *Observer) Disconnect() {
	if !o.active {
		return
	}
	o.active = false
	observers := o.doc.observers[:0]
	for _, obs := range o.doc.observers {
		if obs != o {
			observers = append(observers, obs)
		}
	}
	o.doc.observers = observers
}

func (d *Document) record(m Mutation) {
	// Without observers there is nobody to drain the queue, so drop early.
	if len(d.observers) == 0 {
		return
	}
	d.pending = append(d.pending, m)
}

// maxFlushRounds bounds a single Flush. Observer callbacks that keep
// rewriting already rewritten content would otherwise never settle; the
// translation engine settles in two rounds because its rewrites are
// idempotent and skipped when the content is already in target form.
const maxFlushRounds = 1000

// Flush delivers queued mutation records to observers batch by batch until
// no new records are produced. Records created inside a callback form the
// next batch. It returns the number of batches delivered.
func (d *Document) Flush() int {
	if d.flushing {
		return 0
	}
	d.flushing = true
	defer func() { d.flushing = false }()

	rounds := 0
	for len(d.pending) > 0 && rounds < maxFlushRounds {
		batch := d.pending
		d.pending = nil
		rounds++

		// Callbacks may attach or disconnect observers; dispatch over a
		// snapshot so the list is stable within the round.
		observers := append([]*Observer(nil), d.observers...)
		for _, obs := range observers {
			if !obs.active {
				continue
			}
			var matched []Mutation
			for _, m := range batch {
				if obs.matches(m) {
					matched = append(matched, m)
				}
			}
			if len(matched) > 0 {
				obs.callback(matched)
			}
		}
	}
	return rounds
}

func (o *Observer) matches(m Mutation) bool {
	switch m.Type {
	case ChildList:
		if !o.opts.ChildList {
			return false
		}
	case CharacterData:
		if !o.opts.CharacterData {
			return false
		}
	case Attributes:
		if !o.opts.Attributes {
			return false
		}
	}
	return o.inScope(m.Target)
}

// inScope reports whether n is the observed node or, with Subtree, one of
// its descendants. Nodes already detached from the observed subtree fall out
// of scope and their records are dropped.
func (o *Observer) inScope(n *html.Node) bool {
	if n == o.target {
		return true
	}
	if !o.opts.Subtree {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p == o.target {
			return true
		}
	}
	return false
}
