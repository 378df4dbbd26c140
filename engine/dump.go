package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// treeWriter builds indented text, two spaces per level.
type treeWriter struct {
	b strings.Builder
}

func (tw *treeWriter) indent(depth int) {
	tw.b.WriteString(strings.Repeat("  ", depth))
}

func (tw *treeWriter) line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// value writes label with quoted value so whitespace and escapes stay visible.
func (tw *treeWriter) value(depth int, label, value string) {
	tw.indent(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	tw.b.WriteString(strconv.Quote(value))
	tw.b.WriteByte('\n')
}

// Dump renders pass as a tree, it goes into debug report next to generated
// stylesheet.
func (r *Result) Dump() string {
	var tw treeWriter
	tw.line(0, "pass %s", r.ID)

	tw.line(1, "properties (%d)", len(r.Properties))
	for _, p := range r.Properties {
		tw.value(2, p.Name, p.Syntax+" "+p.InitialValue)
	}

	tw.line(1, "utilities (%d)", len(r.Utilities))
	for _, u := range r.Utilities {
		tw.line(2, "%s [%s]", u.Class, u.Layer)
		tw.value(3, "selector", u.Selector)
		for i, p := range u.Parents {
			tw.value(3, "parent "+strconv.Itoa(i), p)
		}
		for _, e := range u.Entries {
			tw.value(3, e.Property, e.Value)
		}
	}

	if len(r.Unmatched) > 0 {
		tw.line(1, "unmatched (%d)", len(r.Unmatched))
		for _, t := range r.Unmatched {
			tw.value(2, "token", t)
		}
	}
	return tw.b.String()
}
