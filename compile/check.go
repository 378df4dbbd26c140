package compile

import (
	"context"
	"fmt"
	"slices"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"uicss/css"
	"uicss/preset"
	"uicss/state"
	"uicss/theme"
)

// Check is "check" command action.
func Check(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	p, err := env.PreparePreset()
	if err != nil {
		return fmt.Errorf("unable to prepare preset: %w", err)
	}
	if err := checkPreset(p, css.NewParser(env.Log), log); err != nil {
		return fmt.Errorf("theme does not match preflight: %w", err)
	}
	log.Info("Theme and preflight are consistent", zap.String("preset", p.Name()))
	return nil
}

// checkPreset verifies that every custom property referenced by theme color
// tables and radius scale is declared by preflight. Palette variables are
// expected to come from the hosting application, anything else preflight
// needs from outside is only reported.
func checkPreset(p *preset.Preset, parser *css.Parser, log *zap.Logger) error {
	preflight := p.Preflight()
	if preflight == nil {
		log.Warn("Preflights are disabled, nothing to check against")
		return nil
	}

	sheet := parser.Parse(preflight, "preflight")
	for _, w := range sheet.Warnings {
		log.Warn("Preflight problem", zap.String("details", w))
	}
	declared := sheet.CustomProperties()

	var errs error
	verify := func(where, value string) {
		for _, name := range css.VarReferences(value) {
			if _, ok := declared[name]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("%s refers to undeclared %s", where, name))
			}
		}
	}

	t := p.Theme()
	for _, table := range theme.Tables() {
		for _, role := range t.Roles(table) {
			ref, _ := t.Lookup(table, role)
			verify(string(table)+"."+role, ref)
		}
	}
	scale := theme.RadiusScale()
	var extra []string
	for key := range t.Radius {
		if !slices.Contains(scale, key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range append(scale, extra...) {
		if value, ok := t.Radius[key]; ok {
			verify("radius."+key, value)
		}
	}

	for _, name := range external(sheet, declared, t) {
		log.Warn("Preflight relies on variable defined elsewhere", zap.String("variable", name))
	}

	log.Debug("Preflight checked", zap.Int("declared", len(declared)), zap.Int("problems", len(multierr.Errors(errs))))
	return errs
}

// external lists variables preflight refers to which are neither declared by
// it nor provided by theme palette, in order of appearance.
func external(sheet *css.Stylesheet, declared map[string]string, t *theme.Theme) []string {
	provided := make(map[string]struct{})
	for _, color := range t.Palette() {
		for _, shade := range t.Shades(color) {
			for _, name := range css.VarReferences(t.Colors[color][shade]) {
				provided[name] = struct{}{}
			}
		}
	}

	var res []string
	for _, r := range sheet.Rules {
		for _, e := range r.Entries {
			for _, name := range css.VarReferences(e.Value) {
				_, known := declared[name]
				_, fromPalette := provided[name]
				if !known && !fromPalette && !slices.Contains(res, name) {
					res = append(res, name)
				}
			}
		}
	}
	return res
}
