package generator

import (
	"fmt"
	"log/slog"
	"strings"
)

// AssembleOptions configures one assembly pass.
type AssembleOptions struct {
	// File is stamped onto every node and used in diagnostics.
	File string
	// GlobalNS is the fallback namespace prefix used when no owning class is
	// found. Empty means nodes without a class keep their bare local name.
	GlobalNS string
	// Logger receives warning diagnostics. Nil falls back to slog.Default.
	Logger *slog.Logger
}

// Assemble folds a file's flat docset list into the keyed documentation map.
// The first class docset with a description becomes the owning class; every
// other docset is qualified against it, translated into a typed node, and
// stored under its section-prefixed key. Section docsets are routed into a
// separate registry. A malformed name aborts the file with a *NamingError.
func Assemble(sets []Docset, opts AssembleOptions) (*FileDoc, error) {
	a := &assembler{
		opts: opts,
		log:  opts.Logger,
		doc: &FileDoc{
			File:     opts.File,
			Nodes:    make(map[string]*Node),
			Sections: make(map[string]*Node),
		},
	}
	if a.log == nil {
		a.log = slog.Default()
	}

	rest, class, err := a.takeClass(sets)
	if err != nil {
		return nil, err
	}

	var nodes []*Node
	if class != nil {
		nodes = append(nodes, class)
	}

	for _, ds := range rest {
		if dropDocset(ds) {
			continue
		}
		if !KnownKind(ds.Tagname) {
			// Deliberately permissive: the docset is consumed, the file
			// survives.
			a.warn(ds.Linenr, WarnUnknownTag, fmt.Sprintf("unrecognized tag %q", ds.Tagname),
				slog.String("tag", ds.Tagname))
			continue
		}
		id, err := a.qualify(ds)
		if err != nil {
			return nil, err
		}
		node := a.buildNode(ds, id)
		if node != nil {
			nodes = append(nodes, node)
		}
	}

	a.postProcess(nodes)
	return a.doc, nil
}

type assembler struct {
	opts        AssembleOptions
	log         *slog.Logger
	doc         *FileDoc
	classPrefix string
}

// takeClass removes the owning-class docset from the working list and builds
// its node. First class docset with a non-empty description wins; later
// class docsets stay in the list and are addressed like any other member.
func (a *assembler) takeClass(sets []Docset) ([]Docset, *Node, error) {
	rest := make([]Docset, 0, len(sets))
	var class *Node
	for _, ds := range sets {
		if class == nil && ds.Tagname == "class" && ds.Doc != "" {
			if ds.Name == "" {
				return nil, nil, &NamingError{File: a.opts.File, Line: ds.Linenr, Name: ds.Name, Tag: ds.Tagname}
			}
			a.classPrefix = ds.Name
			class = a.translate(ds, ds.Name)
			class.Inherits = ds.Inherits
			class.AllowChild = ds.AllowChild
			class.Define = ds.Define
			continue
		}
		rest = append(rest, ds)
	}
	return rest, class, nil
}

// dropDocset applies the pre-naming filter: docsets without a description
// are dropped unless they inherit one, and docsets whose sole description is
// a leading @todo marker are dropped outright. The filter is idempotent.
func dropDocset(ds Docset) bool {
	if ds.InheritDoc != nil {
		return false
	}
	if ds.Doc == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ds.Doc)), "@todo")
}

// qualify computes a docset's fully-qualified id. Events join with "@",
// everything else with "."; without an owning class the configured global
// namespace (join ".") or the bare local name (no join) is used. A name that
// ends at the join character has an empty local segment and is fatal unless
// the docset inherits its documentation.
func (a *assembler) qualify(ds Docset) (string, error) {
	join := "."
	if ds.Tagname == "event" {
		join = "@"
	}

	// Sections are addressed by bare id; the owning class never prefixes
	// them.
	if ds.Tagname == "section" {
		if ds.Name == "" && ds.InheritDoc == nil {
			return "", &NamingError{File: a.opts.File, Line: ds.Linenr, Name: ds.Name, Tag: ds.Tagname}
		}
		return ds.Name, nil
	}

	var id string
	switch {
	case a.classPrefix != "":
		id = a.classPrefix + join + ds.Name
	case a.opts.GlobalNS != "":
		join = "."
		id = a.opts.GlobalNS + "." + ds.Name
	default:
		join = ""
		id = ds.Name
	}

	malformed := ds.Name == "" || (join != "" && strings.HasSuffix(id, join))
	if malformed && ds.InheritDoc == nil {
		return "", &NamingError{File: a.opts.File, Line: ds.Linenr, Name: id, Tag: ds.Tagname}
	}
	return id, nil
}

// translate builds the fields every node shares, regardless of kind.
// Optional docset fields are copied only when present; a node never carries
// a defaulted stand-in for an absent field.
func (a *assembler) translate(ds Docset, id string) *Node {
	n := &Node{
		ID:   id,
		Type: TagKind(ds.Tagname),
		Line: ds.Linenr,
	}

	if ds.InheritDoc != nil {
		// Description fields are supplied by whatever resolves the
		// inheritance link later; only the reference is recorded here.
		n.InheritDoc = ds.InheritDoc.Src
	} else {
		n.Description = ds.Doc
		n.ShortDescription = shortDescription(ds.Doc)
	}

	n.Private = ds.Private
	n.Experimental = ds.Experimental
	n.Chainable = ds.Chainable
	n.Author = ds.Author
	n.Version = ds.Version
	n.Since = ds.Since
	n.RelatedTo = ds.See
	n.Section = ds.Section
	return n
}

// shortDescription returns the text up to, not including, the first blank
// line.
func shortDescription(doc string) string {
	if i := strings.Index(doc, "\n\n"); i >= 0 {
		return strings.TrimSpace(doc[:i])
	}
	return strings.TrimSpace(doc)
}

// buildNode dispatches on the docset's kind. Unrecognized kinds produce a
// warning and no node; one malformed comment must not abort the file.
func (a *assembler) buildNode(ds Docset, id string) *Node {
	switch TagKind(ds.Tagname) {
	case KindMethod:
		n := a.translate(ds, id)
		n.Signatures = []Signature{a.buildSignature(ds)}
		n.boundPending = ds.Bound
		return n

	case KindEvent:
		n := a.translate(ds, id)
		n.Signatures = []Signature{a.buildSignature(ds)}
		n.Cancelable = ds.Cancelable
		n.Bubbles = ds.Bubbles
		return n

	case KindProperty, KindAttribute, KindBinding:
		// Value kinds never have call arguments: one synthetic signature
		// carrying only the return type.
		n := a.translate(ds, id)
		sig := Signature{Arguments: []Argument{}}
		if ds.Return != nil {
			sig.Return = a.buildReturn(ds)
		}
		n.Signatures = []Signature{sig}
		return n

	case KindClass, KindSection:
		return a.translate(ds, id)

	default:
		return nil
	}
}

// buildSignature builds the single call signature a method or event docset
// describes. Overloads are not merged; the signature list stays length one
// until there is a product reason to change that.
func (a *assembler) buildSignature(ds Docset) Signature {
	sig := Signature{Arguments: make([]Argument, 0, len(ds.Params))}
	for _, p := range ds.Params {
		types, legacy := splitTypes(p.Type)
		if legacy {
			a.warn(ds.Linenr, WarnLegacyTypeList,
				fmt.Sprintf("comma-separated type list %q for argument %q; use '|'", p.Type, p.Name),
				slog.String("argument", p.Name))
		}
		sig.Arguments = append(sig.Arguments, Argument{
			Name:        p.Name,
			Description: p.Description,
			Types:       types,
			Optional:    p.Optional,
		})
	}
	if ds.Return != nil {
		sig.Return = a.buildReturn(ds)
	}
	return sig
}

func (a *assembler) buildReturn(ds Docset) *Return {
	typ, isArray := parseReturnType(ds.Return.Type)
	return &Return{
		Type:        typ,
		IsArray:     isArray,
		Description: ds.Return.Description,
	}
}

// splitTypes derives an argument's type list from its raw type expression.
// Pipe is the separator; a comma-separated list is a deprecated spelling
// accepted as one compound type, flagged via the second return value.
func splitTypes(raw string) (types []string, legacy bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"mixed"}, false
	}
	if strings.Contains(raw, "|") {
		for _, part := range strings.Split(raw, "|") {
			if part = strings.TrimSpace(part); part != "" {
				types = append(types, part)
			}
		}
		if len(types) == 0 {
			types = []string{"mixed"}
		}
		return types, false
	}
	if strings.Contains(raw, ",") {
		return []string{raw}, true
	}
	return []string{raw}, false
}

// parseReturnType interprets the `[type]` array spelling.
func parseReturnType(raw string) (typ string, isArray bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") && len(raw) > 1 {
		return strings.TrimSpace(raw[1 : len(raw)-1]), true
	}
	return raw, false
}

// postProcess runs once over every produced node: containers are
// initialized, the file is stamped, section nodes are routed into their own
// registry, everything else is stored under its section-prefixed key, and
// bound methods are split into linked static/instance clones.
func (a *assembler) postProcess(nodes []*Node) {
	for _, n := range nodes {
		n.Aliases = []string{}
		n.Children = []string{}
		n.File = a.opts.File
		if n.Type == KindClass {
			n.Subclasses = []string{}
		}

		if n.Type == KindSection {
			a.doc.Sections[n.ID] = n
			continue
		}

		a.store(n)

		if n.Type == KindMethod && n.boundPending {
			a.splitBound(n)
		}
	}
}

// store inserts a node under "<section-or-empty>." + id. The indirection
// lets a later pass relocate nodes under their declared section without
// renaming them. First insertion wins.
func (a *assembler) store(n *Node) {
	key := n.Section + "." + n.ID
	if _, exists := a.doc.Nodes[key]; exists {
		a.warn(n.Line, WarnDuplicateKey, fmt.Sprintf("duplicate node key %q", key),
			slog.String("id", n.ID))
		return
	}
	a.doc.Nodes[key] = n
}

// splitBound clones a bound method, rewriting the trailing "Owner.name" into
// "Owner#name" and cross-linking the pair through their bound references.
func (a *assembler) splitBound(n *Node) {
	i := strings.LastIndex(n.ID, ".")
	if i < 0 {
		a.warn(n.Line, WarnUnboundable,
			fmt.Sprintf("bound method %q has no owner prefix to split on", n.ID),
			slog.String("id", n.ID))
		return
	}

	clone := cloneNode(n)
	clone.ID = n.ID[:i] + "#" + n.ID[i+1:]
	n.Bound = clone.ID
	clone.Bound = n.ID
	a.store(clone)
}

// cloneNode deep-copies a node so the bound pair never shares slices.
func cloneNode(n *Node) *Node {
	c := *n
	c.Aliases = append([]string(nil), n.Aliases...)
	c.Children = append([]string(nil), n.Children...)
	c.Inherits = append([]string(nil), n.Inherits...)
	if n.Subclasses != nil {
		c.Subclasses = append([]string(nil), n.Subclasses...)
	}
	c.Signatures = make([]Signature, len(n.Signatures))
	for i, sig := range n.Signatures {
		cp := Signature{Arguments: append([]Argument(nil), sig.Arguments...)}
		for j, arg := range cp.Arguments {
			cp.Arguments[j].Types = append([]string(nil), arg.Types...)
		}
		if sig.Return != nil {
			ret := *sig.Return
			cp.Return = &ret
		}
		c.Signatures[i] = cp
	}
	return &c
}

func (a *assembler) warn(line int, code, msg string, attrs ...any) {
	a.doc.Warnings = append(a.doc.Warnings, Warning{
		File:    a.opts.File,
		Line:    line,
		Code:    code,
		Message: msg,
	})
	args := append([]any{slog.String("file", a.opts.File), slog.Int("line", line)}, attrs...)
	a.log.Warn(msg, args...)
}
