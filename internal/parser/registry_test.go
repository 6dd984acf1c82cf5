package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("widget.js"))
	assert.True(t, Supported("lib/widget.mjs"))
	assert.True(t, Supported("WIDGET.JS"))
	assert.False(t, Supported("style.css"))
	assert.False(t, Supported("README"))
}

func TestForFile(t *testing.T) {
	p, err := ForFile("widget.js")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = ForFile("style.css")
	require.ErrorIs(t, err, ErrUnsupported)
}
