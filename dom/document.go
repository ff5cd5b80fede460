// Package dom provides a live document layer over net/html trees: selector
// lookup, in-place mutation, and batched mutation observation. Reads are
// plain functions over *html.Node; writes go through Document methods so
// every tree change produces a Mutation record that attached observers can
// consume via Flush.
package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document owns a parsed HTML tree and the mutation queue for it.
// A Document is not safe for concurrent use.
type Document struct {
	root      *html.Node
	selection *goquery.Document
	pending   []Mutation
	observers []*Observer
	flushing  bool
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromNode(root), nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromNode wraps an already parsed tree rooted at root.
func FromNode(root *html.Node) *Document {
	return &Document{
		root:      root,
		selection: goquery.NewDocumentFromNode(root),
	}
}

// Root returns the document root node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element, or nil if the tree has none.
func (d *Document) Body() *html.Node {
	nodes := d.Find("body")
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Find returns the nodes matching a CSS selector, in document order.
func (d *Document) Find(selector string) []*html.Node {
	return d.selection.Find(selector).Nodes
}

// Html serializes the whole document.
func (d *Document) Html() (string, error) {
	var b strings.Builder
	if err := html.Render(&b, d.root); err != nil {
		return "", err
	}
	return b.String(), nil
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Text concatenates the text content of n's subtree.
func Text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

// Attr returns the value of the named attribute on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetText replaces the data of a text node. Calls with a nil or non-text
// node are no-ops.
func (d *Document) SetText(n *html.Node, text string) {
	if n == nil || n.Type != html.TextNode {
		return
	}
	old := n.Data
	n.Data = text
	d.record(Mutation{Type: CharacterData, Target: n, OldValue: old})
}

// SetAttr sets an attribute on an element, adding it if absent.
func (d *Document) SetAttr(n *html.Node, key, value string) {
	if n == nil || n.Type != html.ElementNode {
		return
	}
	old, found := Attr(n, key)
	if found {
		for i := range n.Attr {
			if n.Attr[i].Key == key {
				n.Attr[i].Val = value
			}
		}
	} else {
		n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
	}
	d.record(Mutation{Type: Attributes, Target: n, Attr: key, OldValue: old})
}

// RemoveAttr removes an attribute from an element. Removing an absent
// attribute is a no-op and records nothing.
func (d *Document) RemoveAttr(n *html.Node, key string) {
	if n == nil || n.Type != html.ElementNode {
		return
	}
	old, found := Attr(n, key)
	if !found {
		return
	}
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
	d.record(Mutation{Type: Attributes, Target: n, Attr: key, OldValue: old})
}

// AppendChild attaches child as the last child of parent, detaching it from
// any previous parent first.
func (d *Document) AppendChild(parent, child *html.Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AppendChild(child)
	d.record(Mutation{Type: ChildList, Target: parent, Added: []*html.Node{child}})
}

// RemoveChild detaches child from parent. A child that does not belong to
// parent is left alone.
func (d *Document) RemoveChild(parent, child *html.Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	parent.RemoveChild(child)
	d.record(Mutation{Type: ChildList, Target: parent, Removed: []*html.Node{child}})
}

// SetInnerHTML replaces the children of n with the parsed markup. The old
// children and the new ones are reported in a single childList record.
func (d *Document) SetInnerHTML(n *html.Node, markup string) error {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	nodes, err := parseFragment(markup, n)
	if err != nil {
		return err
	}

	var removed []*html.Node
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		removed = append(removed, c)
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	d.record(Mutation{Type: ChildList, Target: n, Added: nodes, Removed: removed})
	return nil
}

// AppendHTML parses markup in the context of parent and appends the
// resulting nodes. It returns the appended nodes.
func (d *Document) AppendHTML(parent *html.Node, markup string) ([]*html.Node, error) {
	if parent == nil || parent.Type != html.ElementNode {
		return nil, nil
	}
	nodes, err := parseFragment(markup, parent)
	if err != nil {
		return nil, err
	}
	for _, c := range nodes {
		parent.AppendChild(c)
	}
	d.record(Mutation{Type: ChildList, Target: parent, Added: nodes})
	return nodes, nil
}

// parseFragment parses markup as it would appear inside context. The context
// element is cloned shallowly so the fragment parser applies the right
// content model without touching the live tree.
func parseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     context.Data,
		DataAtom: context.DataAtom,
	}
	return html.ParseFragment(strings.NewReader(markup), ctx)
}
