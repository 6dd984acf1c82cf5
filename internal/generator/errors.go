package generator

import "fmt"

// NamingError reports a malformed fully-qualified name. A bad name corrupts
// the whole map's addressing, so the file it occurred in fails as a unit;
// the caller decides whether the run continues with the remaining files.
type NamingError struct {
	File string
	Line int
	Name string
	Tag  string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("%s:%d: malformed name %q for @%s docset (empty local segment)", e.File, e.Line, e.Name, e.Tag)
}
