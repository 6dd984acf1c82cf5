package generator

import "github.com/example/jsdoc-gen/internal/parser"

// TagKind is the documentation-entity category a docset or node represents.
// The set is closed; anything else is reported as an unrecognized tag and
// produces no node.
type TagKind string

const (
	KindClass     TagKind = "class"
	KindMethod    TagKind = "method"
	KindEvent     TagKind = "event"
	KindProperty  TagKind = "property"
	KindAttribute TagKind = "attribute"
	KindBinding   TagKind = "binding"
	KindSection   TagKind = "section"
)

// KnownKind reports whether tagname names one of the recognized kinds.
func KnownKind(tagname string) bool {
	switch TagKind(tagname) {
	case KindClass, KindMethod, KindEvent, KindProperty, KindAttribute, KindBinding, KindSection:
		return true
	}
	return false
}

// Param is one documented parameter of a method or event.
type Param struct {
	Name        string
	Type        string // raw type expression, e.g. "string|number"
	Description string
	Optional    bool
}

// ReturnSpec is a documented return value. The raw type may carry the
// `[type]` array spelling; it is interpreted during assembly.
type ReturnSpec struct {
	Type        string
	Description string
}

// InheritRef marks a docset that inherits its documentation from another
// symbol instead of carrying its own description.
type InheritRef struct {
	Src string
}

// Docset is the flat intermediate record produced by the merge step and
// consumed exactly once by the assembler. Optional fields follow the
// zero-value-means-absent convention; absence must not leak into nodes.
type Docset struct {
	Tagname string
	Name    string
	Doc     string
	Linenr  int

	Params  []Param
	Return  *ReturnSpec
	Section string

	Inherits   []string
	InheritDoc *InheritRef
	See        string
	Author     string
	Version    string
	Since      string
	AllowChild string
	Define     string

	Private      bool
	Experimental bool
	Chainable    bool
	Bound        bool
	Cancelable   bool
	Bubbles      bool

	Code parser.CodeFragment
}

// Argument is one argument of a call signature. Types always holds at least
// one entry; untyped arguments get "mixed".
type Argument struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Types       []string `json:"types"`
	Optional    bool     `json:"optional,omitempty"`
}

// Return describes a signature's return value.
type Return struct {
	Type        string `json:"type,omitempty"`
	IsArray     bool   `json:"isArray,omitempty"`
	Description string `json:"description,omitempty"`
}

// Signature is one call shape. The assembler produces exactly one signature
// per method/event docset; the slice exists so overload merging can be added
// without changing the model.
type Signature struct {
	Arguments []Argument `json:"arguments"`
	Return    *Return    `json:"return,omitempty"`
}

// Node is the persistent documentation unit keyed into the result map.
type Node struct {
	ID               string      `json:"id"`
	Type             TagKind     `json:"type"`
	Description      string      `json:"description,omitempty"`
	ShortDescription string      `json:"short_description,omitempty"`
	Line             int         `json:"line"`
	File             string      `json:"file,omitempty"`
	Aliases          []string    `json:"aliases"`
	Children         []string    `json:"children"`
	Signatures       []Signature `json:"signatures,omitempty"`

	Private      bool     `json:"private,omitempty"`
	Experimental bool     `json:"experimental,omitempty"`
	Chainable    bool     `json:"chainable,omitempty"`
	Cancelable   bool     `json:"cancelable,omitempty"`
	Bubbles      bool     `json:"bubbles,omitempty"`
	RelatedTo    string   `json:"related_to,omitempty"`
	Author       string   `json:"author,omitempty"`
	Version      string   `json:"version,omitempty"`
	Since        string   `json:"since,omitempty"`
	Bound        string   `json:"bound,omitempty"`      // id of the linked clone
	InheritDoc   string   `json:"inheritdoc,omitempty"` // id of the doc source
	Subclasses   []string `json:"subclasses,omitempty"` // class nodes only
	Inherits     []string `json:"inherits,omitempty"`
	AllowChild   string   `json:"allowchild,omitempty"`
	Define       string   `json:"define,omitempty"`

	// Section is routing state, not output: nodes are stored under
	// "<section>.<id>" so a later pass can relocate them without renaming.
	Section string `json:"-"`

	boundPending bool
}

// Warning is a non-fatal processing diagnostic. Warnings never reject a
// docset; the node map is best-effort wherever a warning is emitted.
type Warning struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes.
const (
	WarnLegacyTypeList = "legacy-type-list"
	WarnUnknownTag     = "unknown-tag"
	WarnDuplicateKey   = "duplicate-key"
	WarnUnboundable    = "unboundable-method"
)

// FileDoc is the result of processing one source file: the keyed node map,
// the separately-routed section registry, and any warnings raised on the way.
type FileDoc struct {
	File     string           `json:"file"`
	Nodes    map[string]*Node `json:"nodes"`
	Sections map[string]*Node `json:"sections,omitempty"`
	Warnings []Warning        `json:"warnings,omitempty"`
}

// Result is the merged outcome of one generator run over many files.
type Result struct {
	Files    []string         `json:"files"`
	Nodes    map[string]*Node `json:"nodes"`
	Sections map[string]*Node `json:"sections,omitempty"`
	Warnings []Warning        `json:"warnings,omitempty"`
}
