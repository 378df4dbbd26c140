// Package preset implements color utilities, variants and post-processing
// for nuxt-ui styled components on top of a semantic color theme.
package preset

import (
	_ "embed"
	"maps"
	"slices"

	"uicss/theme"
)

// Name identifies preset in generated output and logs.
const Name = "unocss-preset-nuxt-ui"

// DefaultColorSpace is used for color-mix when options do not name one.
const DefaultColorSpace = "oklab"

//go:embed preflight.css
var preflightCSS []byte

var defaultShortcuts = map[string]string{
	"text-md":      "text-base",
	"column-1":     "columns-1",
	"align-center": "align-middle",
}

var defaultSafelist = []string{
	`before:content-['']`,
	`after:content-['']`,
}

// Options configures preset. Zero value gives defaults.
type Options struct {
	ColorSpace string
	// Preflights and Safelist are enabled unless explicitly set to false.
	Preflights *bool
	Safelist   *bool
	// PreflightCSS replaces embedded companion stylesheet.
	PreflightCSS []byte
	Theme        *theme.Partial
	// Shortcuts are merged over built-in ones.
	Shortcuts map[string]string
}

// Preset is immutable after construction and may be shared by concurrent
// compilation passes.
type Preset struct {
	space     string
	theme     *theme.Theme
	preflight []byte
	safelist  []string
	shortcuts map[string]string
	rules     []Rule
	variants  []Variant
}

// New resolves theme and assembles rules and variants.
func New(opts Options) *Preset {
	p := &Preset{
		space:     opts.ColorSpace,
		theme:     theme.Resolve(opts.Theme),
		shortcuts: maps.Clone(defaultShortcuts),
	}
	if len(p.space) == 0 {
		p.space = DefaultColorSpace
	}
	if enabled(opts.Preflights) {
		p.preflight = preflightCSS
		if len(opts.PreflightCSS) > 0 {
			p.preflight = slices.Clone(opts.PreflightCSS)
		}
	}
	if enabled(opts.Safelist) {
		p.safelist = slices.Clone(defaultSafelist)
	}
	maps.Copy(p.shortcuts, opts.Shortcuts)

	p.rules = p.buildRules()
	p.variants = presetVariants()
	return p
}

func enabled(b *bool) bool {
	return b == nil || *b
}

func (p *Preset) Name() string        { return Name }
func (p *Preset) ColorSpace() string  { return p.space }
func (p *Preset) Theme() *theme.Theme { return p.theme }
func (p *Preset) Rules() []Rule       { return p.rules }
func (p *Preset) Variants() []Variant { return p.variants }

// Preflight returns companion stylesheet or nil when disabled.
func (p *Preset) Preflight() []byte {
	return p.preflight
}

// Safelist returns tokens host always generates, nil when disabled.
func (p *Preset) Safelist() []string {
	return slices.Clone(p.safelist)
}

// Shortcuts returns token aliases host expands before matching.
func (p *Preset) Shortcuts() map[string]string {
	return maps.Clone(p.shortcuts)
}

// Match evaluates rules in declared order, first rule that does not decline
// wins. Declining is not an error: token simply belongs to someone else.
func (p *Preset) Match(token string, reg *Registrar) (*Match, bool) {
	for i := range p.rules {
		if m, ok := p.rules[i].Match(token, reg); ok {
			return m, true
		}
	}
	return nil, false
}
