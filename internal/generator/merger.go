package generator

import "strings"

// mergeState carries the line-number tracker through one file's merge pass.
// It is created per invocation and threaded explicitly, so concurrent
// processing of different files cannot interleave tracker state.
type mergeState struct {
	lastLine int
}

// Merge applies tagname-specific comment augmentation to every expanded
// docset and merges comment- and code-derived fields into the flat Docset
// records the assembler consumes.
func Merge(sets []taggedDocset) []Docset {
	st := mergeState{}
	out := make([]Docset, 0, len(sets))
	for _, ts := range sets {
		out = append(out, mergeOne(ts, &st))
	}
	return out
}

func mergeOne(ts taggedDocset, st *mergeState) Docset {
	ds := Docset{
		Tagname: ts.tagname,
		Doc:     ts.tree.Description,
		Code:    ts.code,
	}

	if ts.line > 0 {
		st.lastLine = ts.line
	}
	ds.Linenr = st.lastLine

	// Name: the structural tag's value wins over the code's declared name.
	if ts.tagname != "" {
		if tag := ts.tree.First(ts.tagname); tag != nil {
			ds.Name, _ = splitFirstWord(tag.Value)
		}
	}
	if ds.Name == "" {
		ds.Name = localName(ts.code.Name)
	}

	augmentCommon(&ds, ts.tree)

	switch ts.tagname {
	case "class":
		augmentClass(&ds, ts.tree)
	case "method":
		augmentCallable(&ds, ts)
		ds.Bound = ts.tree.Has("bound")
	case "event":
		augmentCallable(&ds, ts)
		ds.Cancelable = ts.tree.Has("cancelable")
		ds.Bubbles = ts.tree.Has("bubbles")
	case "property", "attribute", "binding":
		if tag := ts.tree.First("type"); tag != nil {
			spec := parseTypedTag(tag.Text)
			ds.Return = &spec
		} else if tag := ts.tree.First("return"); tag != nil {
			spec := parseTypedTag(tag.Text)
			ds.Return = &spec
		}
	}

	// A comment that consists solely of a @todo marker has no description of
	// its own; surface the marker so the assembler's filter can drop it.
	if ds.Doc == "" {
		if tag := ts.tree.First("todo"); tag != nil {
			ds.Doc = strings.TrimSpace("@todo " + tag.Text)
		}
	}

	return ds
}

// augmentCommon copies the tags every kind understands.
func augmentCommon(ds *Docset, tree *TagTree) {
	if tag := tree.First("inheritdoc"); tag != nil {
		ds.InheritDoc = &InheritRef{Src: strings.TrimSpace(tag.Value)}
	}
	if tag := tree.First("see"); tag != nil {
		ds.See = strings.TrimSpace(tag.Value)
	}
	if tag := tree.First("author"); tag != nil {
		ds.Author = strings.TrimSpace(tag.Text)
	}
	if tag := tree.First("version"); tag != nil {
		ds.Version = strings.TrimSpace(tag.Value)
	}
	if tag := tree.First("since"); tag != nil {
		ds.Since = strings.TrimSpace(tag.Value)
	}
	if tag := tree.First("section"); tag != nil && ds.Tagname != "section" {
		ds.Section, _ = splitFirstWord(tag.Value)
	}
	ds.Private = tree.Has("private")
	ds.Experimental = tree.Has("experimental")
	ds.Chainable = tree.Has("chainable")
}

func augmentClass(ds *Docset, tree *TagTree) {
	for _, name := range []string{"inherits", "extends", "baseclass"} {
		for _, tag := range tree.All(name) {
			for _, ref := range strings.Fields(tag.Value) {
				ds.Inherits = append(ds.Inherits, strings.TrimSuffix(ref, ","))
			}
		}
	}
	if tag := tree.First("allowchild"); tag != nil {
		ds.AllowChild = strings.TrimSpace(tag.Value)
	}
	if tag := tree.First("define"); tag != nil {
		ds.Define = strings.TrimSpace(tag.Value)
	}
}

// augmentCallable merges documented parameters with the code's parameter
// list: @param tags win, the code fills in anything left undocumented.
func augmentCallable(ds *Docset, ts taggedDocset) {
	for _, tag := range ts.tree.All("param") {
		if p, ok := parseParamTag(tag.Text); ok {
			ds.Params = append(ds.Params, p)
		}
	}
	if len(ds.Params) == 0 {
		for _, name := range ts.code.Params {
			ds.Params = append(ds.Params, Param{Name: name})
		}
	}

	if tag := ts.tree.First("return"); tag != nil {
		spec := parseTypedTag(tag.Text)
		ds.Return = &spec
	} else if tag := ts.tree.First("returns"); tag != nil {
		spec := parseTypedTag(tag.Text)
		ds.Return = &spec
	}
}

// localName reduces a dotted code name like `Widget.prototype.save` to its
// final segment.
func localName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
