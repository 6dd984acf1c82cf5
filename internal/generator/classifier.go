package generator

import (
	"strings"

	"github.com/example/jsdoc-gen/internal/parser"
)

// Classify refines the raw docset sequence before tag expansion:
//
//   - comments that are empty after stripping their delimiters are dropped;
//   - when several comments resolved to the same code construct (stacked
//     doc blocks before one declaration), only the last one keeps the code —
//     the earlier blocks become floating comments so they cannot claim a
//     declaration they do not document.
//
// The pass never invents docsets; it only re-partitions what the parser
// produced.
func Classify(raw []parser.RawDocset) []parser.RawDocset {
	out := make([]parser.RawDocset, 0, len(raw))
	for _, ds := range raw {
		if isEmptyComment(ds.Comment) {
			continue
		}
		out = append(out, ds)
	}

	for i := 0; i < len(out)-1; i++ {
		cur, next := &out[i], &out[i+1]
		if cur.Code.Kind != "" && cur.Code.Kind == next.Code.Kind && cur.Code.Line == next.Code.Line {
			cur.Code = parser.CodeFragment{}
		}
	}

	return out
}

func isEmptyComment(text string) bool {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if line != "" {
			return false
		}
	}
	return true
}
