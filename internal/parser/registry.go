package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// ErrUnsupported is returned by ForFile for extensions with no registered
// language.
var ErrUnsupported = errors.New("unsupported file extension")

// registry maps file extensions to tree-sitter languages. The generator is
// bound to its file selectors here; drivers may register further extensions.
var registry = map[string]*sitter.Language{
	".js":  javascript.GetLanguage(),
	".mjs": javascript.GetLanguage(),
}

// Register binds a file extension to a tree-sitter language. The extension
// must include the leading dot. Registering an extension twice replaces the
// earlier binding.
func Register(ext string, lang *sitter.Language) {
	registry[strings.ToLower(ext)] = lang
}

// Supported reports whether a parser is registered for the file's extension.
func Supported(filename string) bool {
	_, ok := registry[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ForFile returns a Parser for the file's extension, or ErrUnsupported.
func ForFile(filename string) (*Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	lang, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	return &Parser{lang: lang}, nil
}
