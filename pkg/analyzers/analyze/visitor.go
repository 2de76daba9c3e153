// Package analyze provides the visitor framework shared by all syntax-tree
// analyzers.
package analyze

import "github.com/solstat/solstat/pkg/rustast"

// NodeVisitor receives enter/exit callbacks during depth-first traversal.
type NodeVisitor interface {
	OnEnter(n *rustast.Node, depth int)
	OnExit(n *rustast.Node, depth int)
}

// Traverser drives any number of visitors over a syntax tree in a single
// depth-first pass. Visitors are invoked in registration order.
type Traverser struct {
	visitors []NodeVisitor
}

// NewTraverser creates an empty Traverser.
func NewTraverser() *Traverser {
	return &Traverser{visitors: make([]NodeVisitor, 0)}
}

// RegisterVisitor adds a visitor to be called during traversal.
func (t *Traverser) RegisterVisitor(v NodeVisitor) {
	t.visitors = append(t.visitors, v)
}

// Traverse walks the tree rooted at root.
func (t *Traverser) Traverse(root *rustast.Node) {
	if root == nil {
		return
	}

	t.traverseRecursive(root, 0)
}

func (t *Traverser) traverseRecursive(n *rustast.Node, depth int) {
	for _, v := range t.visitors {
		v.OnEnter(n, depth)
	}

	for _, child := range n.Children {
		t.traverseRecursive(child, depth+1)
	}

	for _, v := range t.visitors {
		v.OnExit(n, depth)
	}
}
