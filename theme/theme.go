// Package theme defines design tables utilities are validated against and
// resolution of caller overrides on top of built-in defaults.
package theme

import (
	"slices"

	"github.com/maruel/natural"
)

// TableName identifies one of the color tables, value matches the key used in
// theme files.
type TableName string

const (
	Text       TableName = "textColors"
	Background TableName = "backgroundColors"
	Border     TableName = "borderColors"
	Ring       TableName = "ringColors"
	RingOffset TableName = "ringOffsetColors"
	Divide     TableName = "divideColors"
	Outline    TableName = "outlineColors"
	Stroke     TableName = "strokeColors"
	Fill       TableName = "fillColors"
)

// Tables returns all color table names in fixed order.
func Tables() []TableName {
	return []TableName{Text, Background, Border, Ring, RingOffset, Divide, Outline, Stroke, Fill}
}

// Shades maps shade key (DEFAULT, 50, 100 ... 950) to color reference.
type Shades map[string]string

// Theme is fully populated set of tables. Once resolved it is never modified.
type Theme struct {
	Colors           map[string]Shades `yaml:"colors,omitempty" toml:"colors,omitempty"`
	TextColors       map[string]string `yaml:"textColors,omitempty" toml:"textColors,omitempty"`
	BackgroundColors map[string]string `yaml:"backgroundColors,omitempty" toml:"backgroundColors,omitempty"`
	BorderColors     map[string]string `yaml:"borderColors,omitempty" toml:"borderColors,omitempty"`
	RingColors       map[string]string `yaml:"ringColors,omitempty" toml:"ringColors,omitempty"`
	RingOffsetColors map[string]string `yaml:"ringOffsetColors,omitempty" toml:"ringOffsetColors,omitempty"`
	DivideColors     map[string]string `yaml:"divideColors,omitempty" toml:"divideColors,omitempty"`
	OutlineColors    map[string]string `yaml:"outlineColors,omitempty" toml:"outlineColors,omitempty"`
	StrokeColors     map[string]string `yaml:"strokeColors,omitempty" toml:"strokeColors,omitempty"`
	FillColors       map[string]string `yaml:"fillColors,omitempty" toml:"fillColors,omitempty"`
	Radius           map[string]string `yaml:"radius,omitempty" toml:"radius,omitempty"`
}

// Partial is caller supplied theme, any table or role may be absent.
type Partial Theme

// Table returns color table by name, nil for unknown names.
func (t *Theme) Table(name TableName) map[string]string {
	if t == nil {
		return nil
	}
	switch name {
	case Text:
		return t.TextColors
	case Background:
		return t.BackgroundColors
	case Border:
		return t.BorderColors
	case Ring:
		return t.RingColors
	case RingOffset:
		return t.RingOffsetColors
	case Divide:
		return t.DivideColors
	case Outline:
		return t.OutlineColors
	case Stroke:
		return t.StrokeColors
	case Fill:
		return t.FillColors
	}
	return nil
}

// Lookup returns color reference for the role in the table.
func (t *Theme) Lookup(name TableName, role string) (string, bool) {
	ref, ok := t.Table(name)[role]
	return ref, ok
}

// Roles lists table roles: built-in roles first in their declaration order,
// then roles added by overrides in natural order.
func (t *Theme) Roles(name TableName) []string {
	table := t.Table(name)
	roles := make([]string, 0, len(table))
	known := defaultRoles[name]
	for _, r := range known {
		if _, ok := table[r]; ok {
			roles = append(roles, r)
		}
	}
	var extra []string
	for r := range table {
		if !slices.Contains(known, r) {
			extra = append(extra, r)
		}
	}
	slices.SortFunc(extra, compareNatural)
	return append(roles, extra...)
}

// Palette lists palette color names, built-in first.
func (t *Theme) Palette() []string {
	names := make([]string, 0, len(t.Colors))
	for _, n := range paletteNames {
		if _, ok := t.Colors[n]; ok {
			names = append(names, n)
		}
	}
	var extra []string
	for n := range t.Colors {
		if !slices.Contains(paletteNames, n) {
			extra = append(extra, n)
		}
	}
	slices.SortFunc(extra, compareNatural)
	return append(names, extra...)
}

// Shades lists shade keys of the palette color: DEFAULT, then the shade
// ladder, then anything else in natural order.
func (t *Theme) Shades(color string) []string {
	shades := t.Colors[color]
	keys := make([]string, 0, len(shades))
	for _, k := range shadeLadder {
		if _, ok := shades[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range shades {
		if !slices.Contains(shadeLadder, k) {
			extra = append(extra, k)
		}
	}
	slices.SortFunc(extra, compareNatural)
	return append(keys, extra...)
}

func compareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	}
	return 1
}
