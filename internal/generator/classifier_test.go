package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jsdoc-gen/internal/parser"
)

func TestClassifyDropsEmptyComments(t *testing.T) {
	raw := []parser.RawDocset{
		{Comment: "/** */", Line: 1},
		{Comment: "/**\n *\n *\n */", Line: 3},
		{Comment: "/** Real content. */", Line: 7},
	}

	out := Classify(raw)

	require.Len(t, out, 1)
	assert.Equal(t, 7, out[0].Line)
}

func TestClassifyStackedBlocksKeepLastCode(t *testing.T) {
	code := parser.CodeFragment{Kind: "function_declaration", Name: "save", Line: 12}
	raw := []parser.RawDocset{
		{Comment: "/** First floating block. */", Code: code, Line: 8},
		{Comment: "/** The real doc for save. */", Code: code, Line: 10},
	}

	out := Classify(raw)

	require.Len(t, out, 2)
	assert.Empty(t, out[0].Code.Kind, "the earlier block loses its claim on the declaration")
	assert.Equal(t, "save", out[1].Code.Name)
}

func TestClassifyDistinctDeclarationsUntouched(t *testing.T) {
	raw := []parser.RawDocset{
		{Comment: "/** Doc a. */", Code: parser.CodeFragment{Kind: "function_declaration", Name: "a", Line: 2}, Line: 1},
		{Comment: "/** Doc b. */", Code: parser.CodeFragment{Kind: "function_declaration", Name: "b", Line: 6}, Line: 5},
	}

	out := Classify(raw)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Code.Name)
	assert.Equal(t, "b", out[1].Code.Name)
}
