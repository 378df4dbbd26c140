package preset_test

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"uicss/preset"
	"uicss/theme"
)

func TestNew_Defaults(t *testing.T) {
	p := preset.New(preset.Options{})

	if p.ColorSpace() != preset.DefaultColorSpace {
		t.Errorf("ColorSpace() = %q, want %q", p.ColorSpace(), preset.DefaultColorSpace)
	}
	if !bytes.Contains(p.Preflight(), []byte("--ui-text-dimmed: var(--ui-color-neutral-400);")) {
		t.Error("Preflight() does not contain companion stylesheet")
	}
	if want := []string{`before:content-['']`, `after:content-['']`}; !slices.Equal(p.Safelist(), want) {
		t.Errorf("Safelist() = %q, want %q", p.Safelist(), want)
	}
	sc := p.Shortcuts()
	if sc["text-md"] != "text-base" || sc["column-1"] != "columns-1" || sc["align-center"] != "align-middle" {
		t.Errorf("Shortcuts() = %v", sc)
	}
	if len(p.Rules()) != 12 {
		t.Errorf("Rules() has %d families, want 12", len(p.Rules()))
	}
	if len(p.Variants()) != 9 {
		t.Errorf("Variants() has %d stages, want 9", len(p.Variants()))
	}
}

func TestNew_Options(t *testing.T) {
	off := false
	p := preset.New(preset.Options{
		Preflights: &off,
		Safelist:   &off,
		Shortcuts:  map[string]string{"text-md": "text-lg", "btn": "bg-default"},
	})

	if p.Preflight() != nil {
		t.Error("Preflight() not nil when disabled")
	}
	if p.Safelist() != nil {
		t.Error("Safelist() not nil when disabled")
	}
	sc := p.Shortcuts()
	if sc["text-md"] != "text-lg" || sc["btn"] != "bg-default" || sc["column-1"] != "columns-1" {
		t.Errorf("Shortcuts() = %v", sc)
	}

	custom := preset.New(preset.Options{PreflightCSS: []byte(":root{--ui-bg:#fff}")})
	if string(custom.Preflight()) != ":root{--ui-bg:#fff}" {
		t.Errorf("Preflight() = %q", custom.Preflight())
	}
}

func TestPreset_Autocomplete(t *testing.T) {
	p := preset.New(preset.Options{})
	got := p.Autocomplete()

	for _, want := range []string{
		"text-(dimmed|muted|toned|default|highlighted|inverted)",
		"bg-(default|border|muted|elevated|accented|inverted)",
		"from-(default|border|muted|elevated|accented|inverted)",
		"b-l-(default|muted|accented|inverted|bg)",
		"fill-(default|inverted)",
		"transition-[prop1,prop2]",
	} {
		if !slices.Contains(got, want) {
			t.Errorf("Autocomplete() misses %q", want)
		}
	}

	extended := preset.New(preset.Options{Theme: &theme.Partial{FillColors: map[string]string{"brand": "var(--brand)"}}})
	if !slices.Contains(extended.Autocomplete(), "fill-(default|inverted|brand)") {
		t.Errorf("Autocomplete() ignores theme override: %q", extended.Autocomplete())
	}
}

func TestPreset_UtilitiesAreRecognized(t *testing.T) {
	p := preset.New(preset.Options{})
	utils := p.Utilities()
	if len(utils) == 0 {
		t.Fatal("Utilities() is empty")
	}
	for _, u := range utils {
		if _, ok := p.Match(u, preset.NewRegistrar()); !ok {
			t.Errorf("utility %q is not recognized", u)
		}
		if _, ok := p.Match(u+"/50", preset.NewRegistrar()); !ok {
			t.Errorf("utility %q/50 is not recognized", u)
		}
	}
	if !slices.IsSortedFunc(utils, func(a, b string) int { return strings.Compare(a, b) }) {
		// natural order equals lexical one for the built-in roles
		t.Errorf("Utilities() not sorted: %q", utils)
	}
}
