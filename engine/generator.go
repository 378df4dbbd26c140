// Package engine is a minimal utility generator driving the preset: it
// expands shortcuts and variants, runs rules and assembles stylesheet.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uicss/css"
	"uicss/preset"
)

// ContentProperty carries generated content of ::before and ::after.
const ContentProperty = "--un-content"

var reContent = regexp.MustCompile(`^content-\[(.+)\]$`)

// Generator is safe for concurrent use, every Generate call is an independent
// compilation pass.
type Generator struct {
	preset    *preset.Preset
	variants  []preset.Variant
	shortcuts map[string]string
	log       *zap.Logger
}

// New creates generator for the preset. Preset variants are tried before the
// built-in ones.
func New(p *preset.Preset, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		preset:    p,
		variants:  slices.Concat(p.Variants(), hostVariants()),
		shortcuts: p.Shortcuts(),
		log:       log.Named("engine"),
	}
}

// Generate runs one compilation pass over tokens plus preset safelist.
// Tokens nobody recognizes are reported in Result.Unmatched.
func (g *Generator) Generate(ctx context.Context, tokens []string) (*Result, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to create pass id: %w", err)
	}
	log := g.log.With(zap.Stringer("pass", id))
	log.Debug("Generation started", zap.Int("tokens", len(tokens)))

	reg := preset.NewRegistrar()
	res := &Result{ID: id, Preflight: g.preset.Preflight()}

	seen := make(map[string]struct{}, len(tokens))
	for _, token := range slices.Concat(tokens, g.preset.Safelist()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(token) == 0 {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}

		u, ok := g.utility(token, reg)
		if !ok {
			res.Unmatched = append(res.Unmatched, token)
			continue
		}
		res.Utilities = append(res.Utilities, u)
	}

	res.Supports = reg.Requested()
	res.Properties = reg.Flush()
	sortUtilities(res.Utilities)

	log.Debug("Generation finished",
		zap.Int("utilities", len(res.Utilities)),
		zap.Int("properties", len(res.Properties)),
		zap.Int("unmatched", len(res.Unmatched)))
	return res, nil
}

func (g *Generator) utility(token string, reg *preset.Registrar) (*preset.Utility, bool) {
	vc, _ := preset.ApplyVariants(preset.NewVariantContext(token), g.variants)

	matcher := vc.Matcher
	if expanded, ok := g.shortcuts[matcher]; ok {
		matcher = expanded
	}

	var entries css.Entries
	if m := reContent.FindStringSubmatch(matcher); m != nil {
		reg.RegisterProperty(css.PropertyRule{Name: ContentProperty, Syntax: "*", InitialValue: `""`})
		entries = css.Entries{
			{Property: ContentProperty, Value: strings.ReplaceAll(m[1], "_", " ")},
			{Property: "content", Value: "var(" + ContentProperty + ")"},
		}
	} else {
		m, ok := g.preset.Match(matcher, reg)
		if !ok {
			return nil, false
		}
		entries = m.Entries
		for _, rw := range m.Nest {
			vc = preset.Compose(vc, rw)
		}
	}

	u := &preset.Utility{
		Layer:    css.LayerDefault,
		Class:    token,
		Selector: vc.Selector,
		Parents:  vc.Parents,
		Entries:  entries,
	}
	preset.PostProcess(u)
	return u, true
}

func hostVariant(name string, rw preset.Rewrite) preset.Variant {
	return preset.Variant{
		Name:    name,
		Pattern: regexp.MustCompile(`^` + name + `:(.*)$`),
		Build:   func([]string) preset.Rewrite { return rw },
	}
}

func hostVariants() []preset.Variant {
	return []preset.Variant{
		hostVariant("hover", preset.Suffix(":hover")),
		hostVariant("focus", preset.Suffix(":focus")),
		hostVariant("active", preset.Suffix(":active")),
		hostVariant("disabled", preset.Suffix(":disabled")),
		hostVariant("first", preset.Suffix(":first-child")),
		hostVariant("last", preset.Suffix(":last-child")),
		hostVariant("only", preset.Suffix(":only-child")),
		hostVariant("odd", preset.Suffix(":nth-child(odd)")),
		hostVariant("even", preset.Suffix(":nth-child(even)")),
		hostVariant("before", preset.Suffix("::before")),
		hostVariant("after", preset.Suffix("::after")),
		hostVariant("placeholder", preset.Suffix("::placeholder")),
		hostVariant("dark", preset.Prefix(".dark")),
	}
}
