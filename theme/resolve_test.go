package theme_test

import (
	"reflect"
	"testing"

	"uicss/theme"
)

func TestResolve_NilAndEmpty(t *testing.T) {
	def := theme.Default()

	if got := theme.Resolve(nil); !reflect.DeepEqual(got, def) {
		t.Errorf("Resolve(nil) differs from defaults")
	}
	if got := theme.Resolve(&theme.Partial{}); !reflect.DeepEqual(got, def) {
		t.Errorf("Resolve(empty) differs from defaults")
	}
}

func TestResolve_SingleRoleOverride(t *testing.T) {
	partial := &theme.Partial{
		TextColors: map[string]string{"default": "X"},
	}
	got := theme.Resolve(partial)
	def := theme.Default()

	if v, _ := got.Lookup(theme.Text, "default"); v != "X" {
		t.Fatalf("text default = %q, want X", v)
	}
	for role, ref := range def.TextColors {
		if role == "default" {
			continue
		}
		if got.TextColors[role] != ref {
			t.Errorf("text role %q = %q, want %q", role, got.TextColors[role], ref)
		}
	}
	if len(got.TextColors) != 6 {
		t.Errorf("text table has %d roles, want 6", len(got.TextColors))
	}
	for _, name := range theme.Tables() {
		if name == theme.Text {
			continue
		}
		if !reflect.DeepEqual(got.Table(name), def.Table(name)) {
			t.Errorf("table %s changed", name)
		}
	}
	if !reflect.DeepEqual(got.Colors, def.Colors) || !reflect.DeepEqual(got.Radius, def.Radius) {
		t.Error("palette or radius changed")
	}
}

func TestResolve_AddsRolesAndColors(t *testing.T) {
	partial := &theme.Partial{
		BorderColors: map[string]string{"brand": "var(--brand)"},
		Colors: map[string]theme.Shades{
			"primary": {"500": "red"},
			"brand":   {"DEFAULT": "var(--brand)", "50": "var(--brand-50)"},
		},
	}
	got := theme.Resolve(partial)

	if v, ok := got.Lookup(theme.Border, "brand"); !ok || v != "var(--brand)" {
		t.Errorf("border brand = %q, %v", v, ok)
	}
	if v, ok := got.Lookup(theme.Border, "muted"); !ok || v != "var(--ui-border-muted)" {
		t.Errorf("border muted = %q, %v", v, ok)
	}
	if got.Colors["primary"]["500"] != "red" {
		t.Errorf("primary 500 = %q, want red", got.Colors["primary"]["500"])
	}
	if got.Colors["primary"]["600"] != "var(--ui-color-primary-600)" {
		t.Errorf("primary 600 = %q", got.Colors["primary"]["600"])
	}
	if got.Colors["brand"]["DEFAULT"] != "var(--brand)" {
		t.Errorf("brand DEFAULT = %q", got.Colors["brand"]["DEFAULT"])
	}

	roles := got.Roles(theme.Border)
	want := []string{"default", "muted", "accented", "inverted", "bg", "brand"}
	if !reflect.DeepEqual(roles, want) {
		t.Errorf("Roles() = %v, want %v", roles, want)
	}
	palette := got.Palette()
	if palette[len(palette)-1] != "brand" {
		t.Errorf("Palette() = %v, expected brand last", palette)
	}
}

func TestResolve_DoesNotMutatePartial(t *testing.T) {
	partial := &theme.Partial{
		TextColors: map[string]string{"muted": "M"},
		Colors:     map[string]theme.Shades{"brand": {"DEFAULT": "B"}},
	}
	got := theme.Resolve(partial)
	got.TextColors["muted"] = "changed"
	got.Colors["brand"]["DEFAULT"] = "changed"

	if partial.TextColors["muted"] != "M" || partial.Colors["brand"]["DEFAULT"] != "B" {
		t.Error("resolved theme shares storage with partial")
	}
	if len(partial.TextColors) != 1 {
		t.Errorf("partial text table grew to %d entries", len(partial.TextColors))
	}
}

func TestResolve_Deterministic(t *testing.T) {
	partial := &theme.Partial{RingColors: map[string]string{"bg": "var(--x)"}}
	a, b := theme.Resolve(partial), theme.Resolve(partial)
	if !reflect.DeepEqual(a, b) {
		t.Error("Resolve() not deterministic")
	}
}

func TestDefault_Shades(t *testing.T) {
	def := theme.Default()
	shades := def.Shades("neutral")
	if len(shades) != 12 || shades[0] != "DEFAULT" || shades[11] != "950" {
		t.Errorf("Shades(neutral) = %v", shades)
	}
	if def.Colors["neutral"]["DEFAULT"] != "var(--ui-neutral)" {
		t.Errorf("neutral DEFAULT = %q", def.Colors["neutral"]["DEFAULT"])
	}
	if def.Colors["error"]["950"] != "var(--ui-color-error-950)" {
		t.Errorf("error 950 = %q", def.Colors["error"]["950"])
	}
	if def.Radius["2xl"] != "calc(var(--ui-radius) * 4)" {
		t.Errorf("radius 2xl = %q", def.Radius["2xl"])
	}
}

func TestDefault_FreshTables(t *testing.T) {
	a := theme.Default()
	a.TextColors["muted"] = "changed"
	if b := theme.Default(); b.TextColors["muted"] != "var(--ui-text-muted)" {
		t.Error("Default() returned shared tables")
	}
}

func TestTheme_TableUnknown(t *testing.T) {
	def := theme.Default()
	if def.Table("nope") != nil {
		t.Error("expected nil for unknown table")
	}
	if _, ok := def.Lookup(theme.Outline, "muted"); ok {
		t.Error("outline table must not have muted role")
	}
}
