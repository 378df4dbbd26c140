package theme

import (
	"fmt"
	"maps"

	"dario.cat/mergo"
)

// Resolve deep merges partial over built-in defaults. Caller values replace
// defaults per table and per role, everything unspecified keeps default
// value. Partial is never modified and result does not share storage with it.
func Resolve(partial *Partial) *Theme {
	t := Default()
	if partial == nil {
		return t
	}

	src := clonePartial(partial)
	palette := src.Colors
	src.Colors = nil
	if err := mergo.Merge(t, Theme(*src), mergo.WithOverride); err != nil {
		// both sides have identical types, merge cannot fail
		panic(fmt.Sprintf("unable to merge theme: %v", err))
	}
	for name, shades := range palette {
		dst, ok := t.Colors[name]
		if !ok {
			t.Colors[name] = shades
			continue
		}
		if err := mergo.Merge(&dst, shades, mergo.WithOverride); err != nil {
			panic(fmt.Sprintf("unable to merge palette color '%s': %v", name, err))
		}
	}
	return t
}

func clonePartial(p *Partial) *Partial {
	c := &Partial{
		TextColors:       maps.Clone(p.TextColors),
		BackgroundColors: maps.Clone(p.BackgroundColors),
		BorderColors:     maps.Clone(p.BorderColors),
		RingColors:       maps.Clone(p.RingColors),
		RingOffsetColors: maps.Clone(p.RingOffsetColors),
		DivideColors:     maps.Clone(p.DivideColors),
		OutlineColors:    maps.Clone(p.OutlineColors),
		StrokeColors:     maps.Clone(p.StrokeColors),
		FillColors:       maps.Clone(p.FillColors),
		Radius:           maps.Clone(p.Radius),
	}
	if p.Colors != nil {
		c.Colors = make(map[string]Shades, len(p.Colors))
		for name, shades := range p.Colors {
			c.Colors[name] = maps.Clone(shades)
		}
	}
	return c
}

// IsEmpty reports if partial overrides nothing.
func (p *Partial) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Colors) == 0 && len(p.TextColors) == 0 && len(p.BackgroundColors) == 0 &&
		len(p.BorderColors) == 0 && len(p.RingColors) == 0 && len(p.RingOffsetColors) == 0 &&
		len(p.DivideColors) == 0 && len(p.OutlineColors) == 0 && len(p.StrokeColors) == 0 &&
		len(p.FillColors) == 0 && len(p.Radius) == 0
}
