package engine

import (
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	"uicss/css"
	"uicss/preset"
)

// SupportsFallback guards custom property defaults for browsers lacking
// @property support.
const SupportsFallback = "@supports ((-webkit-hyphens: none) and (not (margin-trim: inline))) or ((-moz-orient: inline) and (not (color:rgb(from red r g b))))"

// Result is the outcome of a compilation pass.
type Result struct {
	ID        uuid.UUID
	Preflight []byte
	// Supports lists registrations in request order, Properties sorted by name.
	Supports   []css.PropertyRule
	Properties []css.PropertyRule
	Utilities  []*preset.Utility
	Unmatched  []string
}

func compareSelectors(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	}
	return 1
}

func sortUtilities(utils []*preset.Utility) {
	slices.SortStableFunc(utils, func(a, b *preset.Utility) int {
		return compareSelectors(css.ClassSelector(a.Class), css.ClassSelector(b.Class))
	})
}

// group is a set of utilities rendered as a single block.
type group struct {
	selectors []string
	inner     []string
	body      string
}

// groups folds flat utilities with identical declarations into one selector
// list, the group takes position of its first member. Selectors with
// pseudo-elements are never merged.
func (r *Result) groups() []*group {
	var (
		res  []*group
		flat = make(map[string]*group)
	)
	for _, u := range r.Utilities {
		body := u.Entries.Body()
		if len(u.Parents) == 0 && !strings.Contains(u.Selector, "::") {
			if g, ok := flat[body]; ok {
				g.selectors = append(g.selectors, u.Selector)
				continue
			}
			g := &group{selectors: []string{u.Selector}, body: body}
			flat[body] = g
			res = append(res, g)
			continue
		}
		if len(u.Parents) == 0 {
			res = append(res, &group{selectors: []string{u.Selector}, body: body})
			continue
		}
		inner := append(slices.Clone(u.Parents[1:]), u.Selector)
		res = append(res, &group{selectors: []string{u.Parents[0]}, inner: inner, body: body})
	}
	return res
}

func (g *group) write(b *strings.Builder) {
	b.WriteString(strings.Join(g.selectors, ",\n"))
	if len(g.inner) == 0 {
		b.WriteString("{" + g.body + "}")
		return
	}
	b.WriteString("{\n")
	last := len(g.inner) - 1
	for i, sel := range g.inner {
		b.WriteString(sel)
		if i < last {
			b.WriteString("{\n")
		}
	}
	b.WriteString("{" + g.body + "}")
	for range last + 1 {
		b.WriteString("\n}")
	}
}

// CSS renders stylesheet: preflights, property registrations and utilities,
// each section preceded by its layer comment. Empty sections are omitted.
func (r *Result) CSS() string {
	var sections []string

	if len(r.Preflight) > 0 {
		sections = append(sections, "/* layer: "+string(css.LayerPreflights)+" */\n"+string(r.Preflight))
	}

	if len(r.Properties) > 0 {
		var b strings.Builder
		b.WriteString("/* layer: " + string(css.LayerProperties) + " */\n")
		b.WriteString(SupportsFallback)
		b.WriteString("{*, ::before, ::after, ::backdrop{")
		for _, p := range r.Supports {
			b.WriteString(p.Name + ":" + p.InitialValue + ";")
		}
		b.WriteString("}}")
		for _, p := range r.Properties {
			b.WriteString("\n" + p.String())
		}
		sections = append(sections, b.String())
	}

	if len(r.Utilities) > 0 {
		var b strings.Builder
		b.WriteString("/* layer: " + string(css.LayerDefault) + " */")
		for _, g := range r.groups() {
			b.WriteByte('\n')
			g.write(&b)
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n")
}

// WriteTo writes rendered stylesheet to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.CSS())
	return int64(n), err
}
