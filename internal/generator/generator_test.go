package generator

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jsdoc-gen/internal/parser"
)

const widgetSource = `/**
 * A configurable widget.
 * @class Widget
 * @extends Base
 */
class Widget {
  /**
   * Renders the widget into its container.
   * @param {Element} container The target element.
   * @return {boolean} True when something was drawn.
   */
  render(container) {}

  /**
   * Persists the widget.
   * @bound
   */
  save() {}
}

/**
 * Fires whenever the widget value changes.
 * @event change
 * @cancelable
 */

/**
 * The display title.
 * @property title
 * @type {string}
 */
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessFile(t *testing.T) {
	doc, err := ProcessFile(context.Background(), "widget.js", []byte(widgetSource),
		Options{Logger: testLogger()})
	require.NoError(t, err)

	require.Contains(t, doc.Nodes, ".Widget")
	class := doc.Nodes[".Widget"]
	assert.Equal(t, KindClass, class.Type)
	assert.Equal(t, []string{"Base"}, class.Inherits)

	require.Contains(t, doc.Nodes, ".Widget.render")
	render := doc.Nodes[".Widget.render"]
	require.Len(t, render.Signatures, 1)
	require.Len(t, render.Signatures[0].Arguments, 1)
	assert.Equal(t, "container", render.Signatures[0].Arguments[0].Name)
	assert.Equal(t, []string{"Element"}, render.Signatures[0].Arguments[0].Types)
	require.NotNil(t, render.Signatures[0].Return)
	assert.Equal(t, "boolean", render.Signatures[0].Return.Type)

	assert.Contains(t, doc.Nodes, ".Widget.save")
	assert.Contains(t, doc.Nodes, ".Widget#save")

	require.Contains(t, doc.Nodes, ".Widget@change")
	assert.True(t, doc.Nodes[".Widget@change"].Cancelable)

	require.Contains(t, doc.Nodes, ".Widget.title")
	title := doc.Nodes[".Widget.title"]
	require.Len(t, title.Signatures, 1)
	assert.Empty(t, title.Signatures[0].Arguments)
	require.NotNil(t, title.Signatures[0].Return)
	assert.Equal(t, "string", title.Signatures[0].Return.Type)

	for _, n := range doc.Nodes {
		assert.Equal(t, "widget.js", n.File)
	}
}

func TestProcessFileUnsupportedExtension(t *testing.T) {
	_, err := ProcessFile(context.Background(), "style.css", nil, Options{Logger: testLogger()})
	require.ErrorIs(t, err, parser.ErrUnsupported)
}

func TestProcessFileInvalidUTF8(t *testing.T) {
	_, err := ProcessFile(context.Background(), "bad.js", []byte{0xff, 0xfe}, Options{Logger: testLogger()})
	require.Error(t, err)
}

func TestRunMergesFilesInPathOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", `/**
 * Defined first.
 * @method shared
 */
`)
	writeFile(t, dir, "b.js", `/**
 * Defined second.
 * @method shared
 */

/**
 * Only here.
 * @method unique
 */
`)

	gen := New(Options{Logger: testLogger()})
	result, err := gen.Run(context.Background(), []string{filepath.Join(dir, "*.js")}, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "a.js"), filepath.Join(dir, "b.js")}, result.Files)

	shared := result.Nodes[".shared"]
	require.NotNil(t, shared)
	assert.Equal(t, "Defined first.", shared.Description, "earlier file wins the key collision")

	assert.Contains(t, result.Nodes, ".unique")

	var dup int
	for _, w := range result.Warnings {
		if w.Code == WarnDuplicateKey {
			dup++
		}
	}
	assert.Equal(t, 1, dup)
}

func TestRunDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.js", "/**\n * Doc one.\n * @method one\n */\n")
	writeFile(t, dir, "two.mjs", "/**\n * Doc two.\n * @method two\n */\n")
	writeFile(t, dir, "three.js", "/**\n * Doc three.\n * @method three\n */\n")

	gen := New(Options{Logger: testLogger()})
	pattern := []string{filepath.Join(dir, "**", "*.{js,mjs}"), filepath.Join(dir, "*")}

	first, err := gen.Run(context.Background(), pattern, 3)
	require.NoError(t, err)
	second, err := gen.Run(context.Background(), pattern, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.Files, 3, "patterns must de-duplicate")
}

func TestRunPartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.js", "/**\n * Fine.\n * @method fine\n */\n")
	writeFile(t, dir, "bad.js", `/**
 * A class.
 * @class Broken
 */

/**
 * No name at all.
 * @method
 */
`)

	gen := New(Options{Logger: testLogger()})
	result, err := gen.Run(context.Background(), []string{filepath.Join(dir, "*.js")}, 2)

	require.Error(t, err)
	var nameErr *NamingError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, filepath.Join(dir, "bad.js"), nameErr.File)

	require.NotNil(t, result, "good files still produce output")
	assert.Contains(t, result.Nodes, ".fine")
}

func TestRunNoMatches(t *testing.T) {
	gen := New(Options{Logger: testLogger()})
	_, err := gen.Run(context.Background(), []string{filepath.Join(t.TempDir(), "*.js")}, 1)
	require.Error(t, err)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
