package generator

import (
	"regexp"
	"strings"

	"github.com/example/jsdoc-gen/internal/parser"
)

// Tag is one @-directive inside a doc comment.
type Tag struct {
	Name  string // tag name without the '@'
	Value string // remainder of the tag's first line
	Text  string // Value plus any continuation lines
	Line  int    // 0-based line offset within the comment block
}

// TagTree is the structured form of one doc comment: the free-text
// description followed by its tags in source order.
type TagTree struct {
	Description string
	Tags        []Tag
}

// First returns the first tag with the given name, or nil.
func (t *TagTree) First(name string) *Tag {
	for i := range t.Tags {
		if t.Tags[i].Name == name {
			return &t.Tags[i]
		}
	}
	return nil
}

// All returns every tag with the given name, in source order.
func (t *TagTree) All(name string) []Tag {
	var out []Tag
	for _, tag := range t.Tags {
		if tag.Name == name {
			out = append(out, tag)
		}
	}
	return out
}

// Has reports whether any tag with the given name is present.
func (t *TagTree) Has(name string) bool {
	return t.First(name) != nil
}

var tagLine = regexp.MustCompile(`^@([A-Za-z][\w-]*)\s*(.*)$`)

// ParseComment parses raw `/** ... */` comment text into a TagTree. Leading
// `*` gutters are stripped per line. Text before the first tag becomes the
// description; lines after a tag that do not start a new tag are appended to
// that tag's Text.
func ParseComment(raw string) *TagTree {
	lines := splitCommentLines(raw)
	tree := &TagTree{}

	var desc []string
	var current *Tag
	for i, line := range lines {
		if m := tagLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			tree.Tags = append(tree.Tags, Tag{
				Name:  strings.ToLower(m[1]),
				Value: m[2],
				Text:  m[2],
				Line:  i,
			})
			current = &tree.Tags[len(tree.Tags)-1]
			continue
		}
		if current != nil {
			if current.Text == "" {
				current.Text = strings.TrimSpace(line)
			} else {
				current.Text += "\n" + strings.TrimSpace(line)
			}
			continue
		}
		desc = append(desc, line)
	}

	tree.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	for i := range tree.Tags {
		tree.Tags[i].Text = strings.TrimSpace(tree.Tags[i].Text)
	}
	return tree
}

// splitCommentLines removes the /** */ delimiters and the ` * ` gutter.
func splitCommentLines(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		if len(line) > 0 && line[0] == ' ' {
			line = line[1:]
		}
		out = append(out, line)
	}
	return out
}

// structuralTags are the tags that decide a docset's kind, in the order they
// are looked up. "baseclass" is a legacy alias for "class".
var structuralTags = []string{
	"class", "baseclass", "method", "event", "property", "attribute", "binding", "section",
}

// DetectKind determines a docset's tagname. The first structural tag present
// in the comment wins; without one, the shape of the adjacent code decides.
// An empty result means the docset carries no recognizable kind.
func DetectKind(tree *TagTree, code parser.CodeFragment) string {
	best := -1
	kind := ""
	for _, name := range structuralTags {
		if tag := tree.First(name); tag != nil {
			if best == -1 || tag.Line < best {
				best = tag.Line
				kind = name
			}
		}
	}
	if kind == "baseclass" {
		kind = "class"
	}
	if kind != "" {
		return kind
	}

	switch code.Kind {
	case "function_declaration", "generator_function_declaration", "method_definition":
		return "method"
	case "class_declaration":
		return "class"
	case "lexical_declaration", "variable_declaration", "assignment_expression", "pair", "field_definition":
		return "property"
	}
	return ""
}

// paramTag matches `{type} name description`, with an optional bracketed
// `[name]` marking the parameter optional.
var paramTag = regexp.MustCompile(`^(?:\{([^}]*)\}\s*)?(\[)?([\w$.]+)\]?\s*(.*)$`)

// parseParamTag parses a @param tag value into a Param. Returns false when
// no parameter name could be found.
func parseParamTag(value string) (Param, bool) {
	m := paramTag.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil || m[3] == "" {
		return Param{}, false
	}
	return Param{
		Type:        strings.TrimSpace(m[1]),
		Optional:    m[2] == "[",
		Name:        m[3],
		Description: strings.TrimSpace(m[4]),
	}, true
}

var typedTag = regexp.MustCompile(`^(?:\{([^}]*)\}\s*)?(.*)$`)

// parseTypedTag parses a `{type} description` tag value, as used by @return
// and @type.
func parseTypedTag(value string) ReturnSpec {
	m := typedTag.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return ReturnSpec{Description: strings.TrimSpace(value)}
	}
	return ReturnSpec{
		Type:        strings.TrimSpace(m[1]),
		Description: strings.TrimSpace(m[2]),
	}
}
