package generator

import (
	"strings"

	"github.com/example/jsdoc-gen/internal/parser"
)

// taggedDocset is a docset after tag parsing and kind detection, before the
// merge step flattens it.
type taggedDocset struct {
	tree    *TagTree
	tagname string
	code    parser.CodeFragment
	line    int
}

// memberTags are the tags inside a class comment that imply members of the
// class, each of which expands into its own docset.
var memberTags = map[string]bool{
	"method":    true,
	"event":     true,
	"property":  true,
	"attribute": true,
	"binding":   true,
}

// Expand parses each raw docset's comment into a tag tree, detects its kind,
// and expands class-tagged docsets into the class plus the members its
// comment implies. Non-class docsets pass through one to one.
func Expand(raw []parser.RawDocset) []taggedDocset {
	var out []taggedDocset
	for _, ds := range raw {
		tree := ParseComment(ds.Comment)
		tagname := DetectKind(tree, ds.Code)

		if tagname != "class" {
			out = append(out, taggedDocset{tree: tree, tagname: tagname, code: ds.Code, line: ds.Line})
			continue
		}

		classTree := &TagTree{Description: tree.Description}
		var members []taggedDocset
		for _, tag := range tree.Tags {
			if !memberTags[tag.Name] {
				classTree.Tags = append(classTree.Tags, tag)
				continue
			}
			members = append(members, memberDocset(tag, ds.Line))
		}

		out = append(out, taggedDocset{tree: classTree, tagname: "class", code: ds.Code, line: ds.Line})
		out = append(out, members...)
	}
	return out
}

// memberDocset builds the docset a member tag inside a class comment implies.
// The tag's first word is the member name; the rest of its text is the
// member's description.
func memberDocset(tag Tag, classLine int) taggedDocset {
	name, desc := splitFirstWord(tag.Text)
	tree := &TagTree{
		Description: desc,
		Tags: []Tag{{
			Name:  tag.Name,
			Value: name,
			Text:  name,
		}},
	}
	return taggedDocset{
		tree:    tree,
		tagname: tag.Name,
		line:    classLine + tag.Line,
	}
}

func splitFirstWord(s string) (first, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t\n"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i:])
	}
	return s, ""
}
