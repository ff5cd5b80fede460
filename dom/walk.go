package dom

import "golang.org/x/net/html"

// Walk visits the element descendants of root in document order. The accept
// predicate gates each element: returning false skips the element and its
// whole subtree. Text, comment, and other non-element nodes are never
// visited. A nil accept admits everything.
//
// The walk reads the tree live: children rewritten by visit are walked in
// their new form, which is safe as long as visit only mutates the subtree of
// the node it was handed.
func Walk(root *html.Node, accept func(*html.Node) bool, visit func(*html.Node)) {
	if root == nil {
		return
	}
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		walkNode(c, accept, visit)
		c = next
	}
}

func walkNode(n *html.Node, accept func(*html.Node) bool, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		if accept != nil && !accept(n) {
			return
		}
		visit(n)
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		walkNode(c, accept, visit)
		c = next
	}
}
