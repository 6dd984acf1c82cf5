// Package parser turns JavaScript source text into the ordered raw docset
// sequence the generator consumes: every `/**` doc comment paired with the
// code construct that follows it. Parsing is done with tree-sitter; the
// package owns no documentation semantics beyond that pairing.
package parser

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// CodeFragment describes the code construct a doc comment is attached to.
// A zero Kind means the comment had no adjacent code (a floating comment).
type CodeFragment struct {
	Kind   string   // tree-sitter node type of the construct
	Name   string   // declared identifier, if one could be resolved
	Params []string // parameter names for function-like constructs
	Line   int      // 1-based start line of the construct
}

// RawDocset pairs one doc comment with its adjacent code fragment.
type RawDocset struct {
	Comment string       // comment text including the /** */ delimiters
	Code    CodeFragment
	Line    int          // 1-based line the comment starts on
}

// Parser extracts raw docsets from source files of one registered language.
type Parser struct {
	lang *sitter.Language
}

// ParseSource parses src and returns the doc comments paired with the code
// constructs that follow them, in document order. Only `/**` comments are
// considered; plain `//` and `/*` comments are skipped.
func (p *Parser) ParseSource(ctx context.Context, src []byte) ([]RawDocset, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("source is not valid UTF-8")
	}

	inner := sitter.NewParser()
	inner.SetLanguage(p.lang)

	tree, err := inner.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	var sets []RawDocset
	walk(tree.RootNode(), func(node *sitter.Node) {
		if node.Type() != "comment" {
			return
		}
		text := string(src[node.StartByte():node.EndByte()])
		if !strings.HasPrefix(text, "/**") {
			return
		}
		sets = append(sets, RawDocset{
			Comment: text,
			Code:    adjacentFragment(node, src),
			Line:    int(node.StartPoint().Row) + 1,
		})
	})

	return sets, nil
}

// walk performs a depth-first traversal, calling fn for each node.
func walk(node *sitter.Node, fn func(*sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil {
			walk(child, fn)
		}
	}
}

// adjacentFragment resolves the code construct a comment documents: the next
// sibling that is not itself a comment. Export statements are unwrapped to
// the declaration they carry.
func adjacentFragment(comment *sitter.Node, src []byte) CodeFragment {
	next := comment.NextSibling()
	for next != nil && next.Type() == "comment" {
		next = next.NextSibling()
	}
	if next == nil {
		return CodeFragment{}
	}
	return fragmentFor(next, src)
}

func fragmentFor(node *sitter.Node, src []byte) CodeFragment {
	frag := CodeFragment{
		Kind: node.Type(),
		Line: int(node.StartPoint().Row) + 1,
	}

	switch node.Type() {
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			inner := fragmentFor(decl, src)
			inner.Line = frag.Line
			return inner
		}

	case "function_declaration", "generator_function_declaration", "method_definition":
		frag.Name = fieldText(node, "name", src)
		frag.Params = paramNames(node.ChildByFieldName("parameters"), src)

	case "class_declaration":
		frag.Name = fieldText(node, "name", src)

	case "lexical_declaration", "variable_declaration":
		if decl := firstNamedOfType(node, "variable_declarator"); decl != nil {
			frag.Name = fieldText(decl, "name", src)
			if value := decl.ChildByFieldName("value"); value != nil && isFunctionLike(value.Type()) {
				frag.Params = paramNames(value.ChildByFieldName("parameters"), src)
			}
		}

	case "expression_statement":
		if inner := node.NamedChild(0); inner != nil {
			got := fragmentFor(inner, src)
			got.Line = frag.Line
			return got
		}

	case "assignment_expression":
		if left := node.ChildByFieldName("left"); left != nil {
			frag.Name = string(src[left.StartByte():left.EndByte()])
		}
		if right := node.ChildByFieldName("right"); right != nil && isFunctionLike(right.Type()) {
			frag.Params = paramNames(right.ChildByFieldName("parameters"), src)
		}

	case "pair":
		if key := node.ChildByFieldName("key"); key != nil {
			frag.Name = strings.Trim(string(src[key.StartByte():key.EndByte()]), `"'`)
		}
		if value := node.ChildByFieldName("value"); value != nil && isFunctionLike(value.Type()) {
			frag.Params = paramNames(value.ChildByFieldName("parameters"), src)
		}

	case "field_definition":
		frag.Name = fieldText(node, "property", src)
	}

	return frag
}

func isFunctionLike(nodeType string) bool {
	switch nodeType {
	case "function_expression", "function", "arrow_function", "generator_function":
		return true
	}
	return false
}

func fieldText(node *sitter.Node, field string, src []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return string(src[child.StartByte():child.EndByte()])
}

func firstNamedOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// paramNames extracts the declared parameter names from a formal_parameters
// node, looking through default values and rest patterns.
func paramNames(params *sitter.Node, src []byte) []string {
	if params == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p == nil {
			continue
		}
		switch p.Type() {
		case "identifier":
			names = append(names, string(src[p.StartByte():p.EndByte()]))
		case "assignment_pattern":
			if left := p.ChildByFieldName("left"); left != nil {
				names = append(names, string(src[left.StartByte():left.EndByte()]))
			}
		case "rest_pattern":
			if inner := p.NamedChild(0); inner != nil {
				names = append(names, string(src[inner.StartByte():inner.EndByte()]))
			}
		}
	}
	return names
}
