package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jsdoc-gen/internal/parser"
)

func TestExpandPassThrough(t *testing.T) {
	raw := []parser.RawDocset{
		{
			Comment: "/** Saves the widget. */",
			Code:    parser.CodeFragment{Kind: "function_declaration", Name: "save", Line: 4},
			Line:    3,
		},
	}

	out := Expand(raw)

	require.Len(t, out, 1)
	assert.Equal(t, "method", out[0].tagname)
	assert.Equal(t, "save", out[0].code.Name)
	assert.Equal(t, 3, out[0].line)
}

func TestExpandClassMembers(t *testing.T) {
	raw := []parser.RawDocset{
		{
			Comment: `/**
 * A widget.
 * @class Widget
 * @author the maintainers
 * @method render Draws the widget.
 * @event change Fires when the value changes.
 * @property title The display title.
 */`,
			Line: 1,
		},
	}

	out := Expand(raw)

	require.Len(t, out, 4)

	class := out[0]
	assert.Equal(t, "class", class.tagname)
	assert.Equal(t, "A widget.", class.tree.Description)
	// Non-member tags stay on the class.
	assert.True(t, class.tree.Has("class"))
	assert.True(t, class.tree.Has("author"))
	assert.False(t, class.tree.Has("method"))

	method := out[1]
	assert.Equal(t, "method", method.tagname)
	assert.Equal(t, "render", method.tree.First("method").Value)
	assert.Equal(t, "Draws the widget.", method.tree.Description)

	event := out[2]
	assert.Equal(t, "event", event.tagname)
	assert.Equal(t, "change", event.tree.First("event").Value)

	prop := out[3]
	assert.Equal(t, "property", prop.tagname)
	assert.Equal(t, "title", prop.tree.First("property").Value)
	assert.Equal(t, "The display title.", prop.tree.Description)
}

func TestExpandMemberLineOffsets(t *testing.T) {
	raw := []parser.RawDocset{
		{
			Comment: `/**
 * A widget.
 * @class Widget
 * @method render Draws the widget.
 */`,
			Line: 10,
		},
	}

	out := Expand(raw)
	require.Len(t, out, 2)
	assert.Equal(t, 10, out[0].line)
	assert.Greater(t, out[1].line, 10, "member line derives from its tag's offset inside the comment")
}

func TestSplitFirstWord(t *testing.T) {
	first, rest := splitFirstWord("render Draws the widget.")
	assert.Equal(t, "render", first)
	assert.Equal(t, "Draws the widget.", rest)

	first, rest = splitFirstWord("render")
	assert.Equal(t, "render", first)
	assert.Empty(t, rest)

	first, rest = splitFirstWord("")
	assert.Empty(t, first)
	assert.Empty(t, rest)
}
