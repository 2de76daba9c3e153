// Package funcs implements the function traversal visitor: a single
// depth-first pass that emits one metrics record per function definition,
// combining arithmetic, math, control-flow, and safety signals.
package funcs

import (
	"strings"

	"github.com/solstat/solstat/pkg/analyzers/analyze"
	"github.com/solstat/solstat/pkg/metrics"
	"github.com/solstat/solstat/pkg/patterns"
	"github.com/solstat/solstat/pkg/rustast"
)

const anonymousFunctionName = "anonymous"

// frame is the accumulator of one open function definition. Frames form a
// stack so that a function declared inside another function body is
// tracked independently of its enclosing function.
type frame struct {
	fn        *rustast.Node
	record    *metrics.FunctionRecord
	loopDepth int
	condDepth int
}

// Visitor implements analyze.NodeVisitor. It collects one FunctionRecord
// per function definition, in source-declaration order.
type Visitor struct {
	source   []byte
	registry *patterns.Registry
	frames   []*frame
	records  []*metrics.FunctionRecord
}

// NewVisitor creates a function visitor for one file's source. The pattern
// registry may be nil, in which case no semantic tags are attached.
func NewVisitor(source []byte, registry *patterns.Registry) *Visitor {
	return &Visitor{
		source:  source,
		frames:  make([]*frame, 0),
		records: make([]*metrics.FunctionRecord, 0),

		registry: registry,
	}
}

// Records returns the collected function records in declaration order.
func (v *Visitor) Records() []metrics.FunctionRecord {
	records := make([]metrics.FunctionRecord, 0, len(v.records))
	for _, record := range v.records {
		records = append(records, *record)
	}

	return records
}

// OnEnter is called when entering a node during tree traversal.
func (v *Visitor) OnEnter(n *rustast.Node, _ int) {
	if isFunctionDefinition(n) {
		v.pushFrame(n)

		return
	}

	f := v.currentFrame()
	if f == nil {
		return
	}

	switch n.Type {
	case "call_expression":
		v.classifyCall(f, n)
	case "macro_invocation":
		classifyMacro(f.record, macroName(n))
	case "binary_expression", "compound_assignment_expr":
		classifyOperator(&f.record.Arithmetic, v.operatorText(n))
	case "if_expression":
		f.record.ControlFlow.ConditionalCount++
		f.condDepth++

		if f.condDepth > f.record.ControlFlow.MaxConditionalDepth {
			f.record.ControlFlow.MaxConditionalDepth = f.condDepth
		}
	case "while_expression", "for_expression", "loop_expression":
		f.record.ControlFlow.LoopCount++
		f.loopDepth++

		if f.loopDepth > f.record.ControlFlow.MaxLoopDepth {
			f.record.ControlFlow.MaxLoopDepth = f.loopDepth
		}
	case "unsafe_block":
		f.record.Safety.UnsafeBlocks++
	case "pointer_type":
		f.record.Safety.RawPointerOps++
	}
}

// OnExit is called when exiting a node during tree traversal.
func (v *Visitor) OnExit(n *rustast.Node, _ int) {
	if isFunctionDefinition(n) {
		v.popFrame()

		return
	}

	f := v.currentFrame()
	if f == nil {
		return
	}

	switch n.Type {
	case "if_expression":
		f.condDepth--
	case "while_expression", "for_expression", "loop_expression":
		f.loopDepth--
	}
}

// isFunctionDefinition reports whether n opens a function accumulator.
// Trait method declarations without a default body carry no code and are
// not counted.
func isFunctionDefinition(n *rustast.Node) bool {
	return n.Type == "function_item" && n.ChildByField("body") != nil
}

func (v *Visitor) pushFrame(fn *rustast.Node) {
	name := anonymousFunctionName
	if nameNode := fn.ChildByField("name"); nameNode != nil && nameNode.Token != "" {
		name = nameNode.Token
	}

	record := &metrics.FunctionRecord{
		Name:      name,
		Signature: v.signatureText(fn),
		StartLine: fn.StartLine,
		EndLine:   fn.EndLine,
	}

	v.records = append(v.records, record)
	v.frames = append(v.frames, &frame{fn: fn, record: record})
}

func (v *Visitor) popFrame() {
	if len(v.frames) == 0 {
		return
	}

	f := v.frames[len(v.frames)-1]
	v.frames = v.frames[:len(v.frames)-1]

	sub := NewComplexityVisitor()
	subTraverser := analyze.NewTraverser()
	subTraverser.RegisterVisitor(sub)
	subTraverser.Traverse(f.fn.ChildByField("body"))

	f.record.ControlFlow.DecisionPoints = sub.DecisionPoints()
	f.record.ControlFlow.CyclomaticComplexity = sub.Complexity()

	if v.registry != nil {
		f.record.Patterns = v.registry.MatchName(f.record.Name)
	} else {
		f.record.Patterns = make([]string, 0)
	}

	f.record.Complexity = f.record.ComplexityScore()
}

func (v *Visitor) currentFrame() *frame {
	if len(v.frames) == 0 {
		return nil
	}

	return v.frames[len(v.frames)-1]
}

// signatureText is everything from the start of the definition up to the
// opening of the body.
func (v *Visitor) signatureText(fn *rustast.Node) string {
	body := fn.ChildByField("body")
	if body == nil || body.StartByte <= fn.StartByte || body.StartByte > uint(len(v.source)) {
		return ""
	}

	return strings.TrimSpace(string(v.source[fn.StartByte:body.StartByte]))
}

func (v *Visitor) classifyCall(f *frame, call *rustast.Node) {
	callee := call.ChildByField("function")
	if callee == nil {
		return
	}

	switch callee.Type {
	case "field_expression":
		if field := callee.ChildByField("field"); field != nil {
			classifyMethodCall(f.record, field.Token)
		}
	case "identifier":
		classifyBareCall(&f.record.Safety, callee.Token)
	}
}

// operatorText recovers the operator token of a binary or compound
// assignment expression from the source slice between its operands; the
// grammar does not expose the operator as a named child.
func (v *Visitor) operatorText(n *rustast.Node) string {
	left, right := n.ChildByField("left"), n.ChildByField("right")
	if left == nil || right == nil {
		return ""
	}

	start, end := left.EndByte, right.StartByte
	if start >= end || end > uint(len(v.source)) {
		return ""
	}

	return strings.TrimSpace(string(v.source[start:end]))
}

func macroName(n *rustast.Node) string {
	if ident := n.FirstChildOfType("identifier"); ident != nil {
		return ident.Token
	}

	return ""
}
