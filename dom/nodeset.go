package dom

import (
	"runtime"
	"sync"
	"weak"

	"golang.org/x/net/html"
)

// NodeSet tracks node identity with weak membership: the set does not keep
// its members reachable, and entries for collected nodes are removed by
// runtime cleanups. Detached subtrees therefore age out of the set together
// with their memory instead of accumulating over the document's lifetime.
type NodeSet struct {
	mu sync.Mutex
	m  map[weak.Pointer[html.Node]]struct{}
}

// NewNodeSet returns an empty set.
func NewNodeSet() *NodeSet {
	return &NodeSet{m: make(map[weak.Pointer[html.Node]]struct{})}
}

// Add records n as a member. Adding nil or a node already present is a
// no-op.
func (s *NodeSet) Add(n *html.Node) {
	if n == nil {
		return
	}
	p := weak.Make(n)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p]; ok {
		return
	}
	s.m[p] = struct{}{}

	// The cleanup receives the weak pointer, never the node, so membership
	// does not delay collection. Cleanups run off the mutator goroutine,
	// hence the mutex on every access.
	runtime.AddCleanup(n, func(p weak.Pointer[html.Node]) {
		s.mu.Lock()
		delete(s.m, p)
		s.mu.Unlock()
	}, p)
}

// Has reports whether n was added and is still tracked.
func (s *NodeSet) Has(n *html.Node) bool {
	if n == nil {
		return false
	}
	p := weak.Make(n)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[p]
	return ok
}

// Len returns the number of tracked nodes. Entries whose cleanup has not
// run yet are still counted.
func (s *NodeSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
