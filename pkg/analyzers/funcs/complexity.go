package funcs

import "github.com/solstat/solstat/pkg/rustast"

// ComplexityVisitor counts decision points over one function body. Each
// if, while, and for contributes one point; a match contributes one point
// per arm, and an arm carrying a guard contributes one more. Nested
// function definitions are excluded; their branches belong to their own
// record.
type ComplexityVisitor struct {
	decisionPoints int
	skipDepth      int
}

// NewComplexityVisitor creates an empty complexity visitor.
func NewComplexityVisitor() *ComplexityVisitor {
	return &ComplexityVisitor{}
}

// DecisionPoints returns the number of decision points counted.
func (v *ComplexityVisitor) DecisionPoints() int {
	return v.decisionPoints
}

// Complexity returns the cyclomatic complexity, 1 + decision points. A
// straight-line body scores 1.
func (v *ComplexityVisitor) Complexity() int {
	return 1 + v.decisionPoints
}

// OnEnter is called when entering a node during tree traversal.
func (v *ComplexityVisitor) OnEnter(n *rustast.Node, _ int) {
	if n.Type == "function_item" {
		v.skipDepth++

		return
	}

	if v.skipDepth > 0 {
		return
	}

	switch n.Type {
	case "if_expression", "while_expression", "for_expression":
		v.decisionPoints++
	case "match_arm":
		v.decisionPoints++

		if hasGuard(n) {
			v.decisionPoints++
		}
	}
}

// OnExit is called when exiting a node during tree traversal.
func (v *ComplexityVisitor) OnExit(n *rustast.Node, _ int) {
	if n.Type == "function_item" {
		v.skipDepth--
	}
}

// hasGuard reports whether a match arm carries a guard condition.
func hasGuard(arm *rustast.Node) bool {
	pattern := arm.ChildByField("pattern")
	if pattern == nil || pattern.Type != "match_pattern" {
		return false
	}

	return pattern.ChildByField("condition") != nil
}
