// Package rustast parses Rust source files into a lightweight syntax tree
// suitable for single-pass visitor traversal.
package rustast

// Node is one node of a parsed Rust syntax tree. Only named tree-sitter
// nodes are materialized; anonymous tokens (operators, keywords,
// punctuation) are recoverable from the source via byte offsets.
type Node struct {
	// Type is the tree-sitter grammar node type, e.g. "function_item".
	Type string

	// Field is the grammar field name this node occupies in its parent
	// ("name", "body", ...), or empty when the child is positional.
	Field string

	// Token holds the source text of leaf nodes (identifiers, literals).
	// Interior nodes leave it empty.
	Token string

	StartLine uint
	EndLine   uint
	StartByte uint
	EndByte   uint

	Children []*Node
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}

	n.Children = append(n.Children, child)
}

// ChildByField returns the first child occupying the given grammar field,
// or nil.
func (n *Node) ChildByField(field string) *Node {
	for _, child := range n.Children {
		if child.Field == field {
			return child
		}
	}

	return nil
}

// FirstChildOfType returns the first direct child of the given type, or nil.
func (n *Node) FirstChildOfType(nodeType string) *Node {
	for _, child := range n.Children {
		if child.Type == nodeType {
			return child
		}
	}

	return nil
}

// HasChildOfType reports whether any direct child has the given type.
func (n *Node) HasChildOfType(nodeType string) bool {
	return n.FirstChildOfType(nodeType) != nil
}

// NamedChildCount returns the number of materialized children.
func (n *Node) NamedChildCount() int {
	return len(n.Children)
}

// Text returns the source text covered by this node.
func (n *Node) Text(source []byte) string {
	if n.Token != "" {
		return n.Token
	}

	if n.StartByte >= n.EndByte || n.EndByte > uint(len(source)) {
		return ""
	}

	return string(source[n.StartByte:n.EndByte])
}

// LineCount returns the number of source lines this node spans.
func (n *Node) LineCount() int {
	if n.EndLine < n.StartLine {
		return 0
	}

	return int(n.EndLine-n.StartLine) + 1
}
