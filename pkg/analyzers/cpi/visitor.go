// Package cpi implements the cross-program invocation classifier: a
// single-purpose visitor that buckets external call expressions by target
// program and by whether they carry signing material.
package cpi

import (
	"github.com/solstat/solstat/pkg/metrics"
	"github.com/solstat/solstat/pkg/rustast"
)

// lowLevelInvokeTarget is the synthetic target recorded for direct invoke
// calls that name no specific program.
const lowLevelInvokeTarget = "low_level_invoke"

// methodCategories maps known instruction-builder method names to their
// target program bucket.
var methodCategories = map[string]metrics.CallCategory{
	"transfer":           metrics.CategoryToken,
	"transfer_checked":   metrics.CategoryToken,
	"mint_to":            metrics.CategoryToken,
	"initialize_account": metrics.CategoryToken,
	"initialize_mint":    metrics.CategoryToken,
	"burn":               metrics.CategoryToken,
	"approve":            metrics.CategoryToken,
	"revoke":             metrics.CategoryToken,
	"freeze_account":     metrics.CategoryToken,
	"thaw_account":       metrics.CategoryToken,
	"close_account":      metrics.CategoryToken,
	"set_authority":      metrics.CategoryToken,
	"sync_native":        metrics.CategoryToken,

	"create_account":           metrics.CategorySystem,
	"create_account_with_seed": metrics.CategorySystem,
	"allocate":                 metrics.CategorySystem,
	"assign":                   metrics.CategorySystem,

	"create_associated_token_account": metrics.CategoryAssociated,
}

// categoryTargets maps each bucket to its distinct-target identifier.
var categoryTargets = map[metrics.CallCategory]string{
	metrics.CategoryToken:      "token_program",
	metrics.CategorySystem:     "system_program",
	metrics.CategoryAssociated: "associated_token_program",
}

// invokeNames is the fixed set of low-level invocation entry points.
var invokeNames = map[string]struct{}{
	"invoke":                  {},
	"invoke_signed":           {},
	"invoke_signed_unchecked": {},
}

// Visitor implements analyze.NodeVisitor. It is stateless between files;
// create one per file and merge the resulting profiles.
type Visitor struct {
	profile *metrics.CallClassificationProfile
}

// NewVisitor creates a call classification visitor.
func NewVisitor() *Visitor {
	return &Visitor{profile: metrics.NewCallClassificationProfile()}
}

// Profile returns the collected classification profile.
func (v *Visitor) Profile() *metrics.CallClassificationProfile {
	return v.profile
}

// OnEnter is called when entering a node during tree traversal.
func (v *Visitor) OnEnter(n *rustast.Node, _ int) {
	if n.Type != "call_expression" {
		return
	}

	callee := n.ChildByField("function")
	if callee == nil {
		return
	}

	signed := callCarriesArguments(n)

	switch callee.Type {
	case "field_expression":
		if field := callee.ChildByField("field"); field != nil {
			v.classify(field.Token, signed)
		}
	case "identifier":
		v.classifyInvoke(callee.Token, signed)
	case "scoped_identifier":
		// Path calls like token::transfer or program::invoke_signed.
		name := callee.ChildByField("name")
		if name == nil {
			return
		}

		if _, lowLevel := invokeNames[name.Token]; lowLevel {
			v.classifyInvoke(name.Token, signed)
		} else {
			v.classify(name.Token, signed)
		}
	}
}

// OnExit is called when exiting a node during tree traversal.
func (v *Visitor) OnExit(_ *rustast.Node, _ int) {}

func (v *Visitor) classify(name string, signed bool) {
	category, known := methodCategories[name]
	if !known {
		return
	}

	v.record(category, categoryTargets[category], signed)
}

func (v *Visitor) classifyInvoke(name string, signed bool) {
	if _, known := invokeNames[name]; !known {
		return
	}

	v.record(metrics.CategoryOther, lowLevelInvokeTarget, signed)
}

func (v *Visitor) record(category metrics.CallCategory, target string, signed bool) {
	v.profile.Categories[category]++
	v.profile.AddTarget(target)

	if signed {
		v.profile.SignedCalls++
	} else {
		v.profile.UnsignedCalls++
	}
}

// callCarriesArguments reports whether the call passes one or more
// arguments, the heuristic for carrying authority or seed material.
func callCarriesArguments(call *rustast.Node) bool {
	arguments := call.ChildByField("arguments")

	return arguments != nil && len(arguments.Children) > 0
}
