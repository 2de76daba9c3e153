package rustast //nolint:testpackage // testing internal implementation.

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_ChildByField(t *testing.T) {
	t.Parallel()

	fn := &Node{Type: "function_item"}
	fn.AddChild(&Node{Type: "identifier", Field: "name", Token: "deposit"})
	fn.AddChild(&Node{Type: "block", Field: "body"})

	name := fn.ChildByField("name")
	assert.NotNil(t, name)
	assert.Equal(t, "deposit", name.Token)

	assert.Nil(t, fn.ChildByField("parameters"))
}

func TestNode_FirstChildOfType(t *testing.T) {
	t.Parallel()

	root := &Node{Type: "source_file"}
	root.AddChild(&Node{Type: "use_declaration"})
	root.AddChild(&Node{Type: "function_item", Token: "first"})
	root.AddChild(&Node{Type: "function_item", Token: "second"})

	found := root.FirstChildOfType("function_item")
	assert.NotNil(t, found)
	assert.Equal(t, "first", found.Token)
	assert.True(t, root.HasChildOfType("use_declaration"))
	assert.False(t, root.HasChildOfType("impl_item"))
}

func TestNode_Text(t *testing.T) {
	t.Parallel()

	source := []byte("let x = a + b;")

	leaf := &Node{Type: "identifier", Token: "a"}
	assert.Equal(t, "a", leaf.Text(source))

	span := &Node{Type: "binary_expression", StartByte: 8, EndByte: 13}
	assert.Equal(t, "a + b", span.Text(source))

	empty := &Node{Type: "binary_expression", StartByte: 10, EndByte: 5}
	assert.Empty(t, empty.Text(source))
}

func TestNode_LineCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, (&Node{StartLine: 4, EndLine: 6}).LineCount())
	assert.Equal(t, 1, (&Node{StartLine: 9, EndLine: 9}).LineCount())
}
