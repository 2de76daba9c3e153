package rustast

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alexaandru/go-sitter-forest/rust"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for parser operations.
var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoRootNode      = errors.New("no root node produced")
	ErrSyntax          = errors.New("source contains syntax errors")
)

// errorNodeType is the tree-sitter node type emitted for unparseable input.
const errorNodeType = "ERROR"

// rustExtension is the only file extension this parser accepts.
const rustExtension = ".rs"

// grammarFields lists the grammar field names preserved on converted nodes.
// Field resolution matches tree-sitter field nodes back to named children
// by byte range.
var grammarFields = []string{
	"name", "body", "parameters", "return_type", "function", "arguments",
	"condition", "pattern", "value", "left", "right", "type", "field",
	"consequence", "alternative", "trait",
}

var (
	rustLanguage     *sitter.Language
	rustLanguageOnce sync.Once
)

func language() *sitter.Language {
	rustLanguageOnce.Do(func() {
		rustLanguage = sitter.NewLanguage(rust.GetLanguage())
	})

	return rustLanguage
}

// Parser turns Rust source into *Node trees. A Parser is safe for
// concurrent use; underlying tree-sitter parsers are pooled per call.
type Parser struct {
	pool sync.Pool
}

// NewParser creates a Rust parser.
func NewParser() *Parser {
	lang := language()

	return &Parser{
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}
}

// IsSupported reports whether the given filename looks like a Rust source file.
func (p *Parser) IsSupported(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == rustExtension
}

// Parse parses one Rust file into a syntax tree. The returned tree holds no
// references to tree-sitter state and is safe to retain after the call.
func (p *Parser) Parse(ctx context.Context, filename string, content []byte) (*Node, error) {
	if !p.IsSupported(filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}

	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errors.New("parser pool returned unexpected type")
	}
	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("%w: %s", ErrNoRootNode, filename)
	}

	converted := convert(root, content, "")
	if converted == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRootNode, filename)
	}

	if containsErrorNode(converted) {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, filename)
	}

	return converted, nil
}

// convert materializes a tree-sitter node and its named descendants.
func convert(tsNode sitter.Node, content []byte, field string) *Node {
	start := tsNode.StartPoint()
	end := tsNode.EndPoint()

	converted := &Node{
		Type:      tsNode.Type(),
		Field:     field,
		StartLine: uint(start.Row) + 1,
		EndLine:   uint(end.Row) + 1,
		StartByte: uint(tsNode.StartByte()),
		EndByte:   uint(tsNode.EndByte()),
	}

	childCount := tsNode.NamedChildCount()
	if childCount == 0 {
		startByte, endByte := converted.StartByte, converted.EndByte
		if startByte < endByte && endByte <= uint(len(content)) {
			converted.Token = string(content[startByte:endByte])
		}

		return converted
	}

	fields := resolveFields(tsNode)
	converted.Children = make([]*Node, 0, childCount)

	for idx := range childCount {
		child := tsNode.NamedChild(idx)
		if child.IsNull() {
			continue
		}

		childField := fields[rangeKey{uint(child.StartByte()), uint(child.EndByte())}]
		converted.AddChild(convert(child, content, childField))
	}

	return converted
}

// rangeKey identifies a child node by its byte range within the parent.
type rangeKey struct {
	start uint
	end   uint
}

// resolveFields maps child byte ranges to the grammar field they occupy.
func resolveFields(tsNode sitter.Node) map[rangeKey]string {
	fields := make(map[rangeKey]string, len(grammarFields))

	for _, name := range grammarFields {
		fieldNode := tsNode.ChildByFieldName(name)
		if fieldNode.IsNull() {
			continue
		}

		key := rangeKey{uint(fieldNode.StartByte()), uint(fieldNode.EndByte())}
		if _, taken := fields[key]; !taken {
			fields[key] = name
		}
	}

	return fields
}

// containsErrorNode reports whether the converted tree includes a
// tree-sitter ERROR node anywhere.
func containsErrorNode(n *Node) bool {
	if n.Type == errorNodeType {
		return true
	}

	for _, child := range n.Children {
		if containsErrorNode(child) {
			return true
		}
	}

	return false
}
