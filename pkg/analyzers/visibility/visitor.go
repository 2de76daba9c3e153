// Package visibility counts function definitions by visibility.
package visibility

import (
	"github.com/solstat/solstat/pkg/metrics"
	"github.com/solstat/solstat/pkg/rustast"
)

// Visitor implements analyze.NodeVisitor. Any function item carrying a
// visibility modifier (pub and its restricted forms) counts as public.
type Visitor struct {
	profile metrics.VisibilityProfile
}

// NewVisitor creates a visibility visitor.
func NewVisitor() *Visitor {
	return &Visitor{}
}

// Profile returns the collected visibility counts.
func (v *Visitor) Profile() metrics.VisibilityProfile {
	return v.profile
}

// OnEnter is called when entering a node during tree traversal.
func (v *Visitor) OnEnter(n *rustast.Node, _ int) {
	if n.Type != "function_item" {
		return
	}

	if n.HasChildOfType("visibility_modifier") {
		v.profile.Public++
	} else {
		v.profile.Private++
	}
}

// OnExit is called when exiting a node during tree traversal.
func (v *Visitor) OnExit(_ *rustast.Node, _ int) {}
