package engine_test

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"

	"uicss/engine"
	"uicss/preset"
)

const (
	supports = engine.SupportsFallback + "{*, ::before, ::after, ::backdrop{"
	textProp = `@property --un-text-opacity{syntax:"<percentage>";inherits:false;initial-value:100%;}`
)

func bare() *preset.Preset {
	off := false
	return preset.New(preset.Options{Preflights: &off, Safelist: &off})
}

func mix(color, opacity string) string {
	return "color-mix(in oklab, " + color + " " + opacity + ", transparent)"
}

func TestGenerate(t *testing.T) {
	dimmed := "color:" + mix("var(--ui-text-dimmed)", "var(--un-text-opacity, 100%)") + ";"
	muted := "color:" + mix("var(--ui-text-muted)", "var(--un-text-opacity, 100%)") + ";"

	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{
			name:   "text color",
			tokens: []string{"text-muted/50", "text-muted"},
			want: "/* layer: properties */\n" +
				supports + "--un-text-opacity:100%;}}\n" +
				textProp + "\n" +
				"/* layer: default */\n" +
				".text-muted{" + muted + "}\n" +
				`.text-muted\/50{color:` + mix("var(--ui-text-muted)", "50%") + ";}",
		},
		{
			name:   "border aliases",
			tokens: []string{"border-accented", "b-t-muted/50", "b-accented"},
			want: "/* layer: properties */\n" +
				supports + "--un-border-opacity:100%;--un-border-top-opacity:100%;}}\n" +
				`@property --un-border-opacity{syntax:"<percentage>";inherits:false;initial-value:100%;}` + "\n" +
				`@property --un-border-top-opacity{syntax:"<percentage>";inherits:false;initial-value:100%;}` + "\n" +
				"/* layer: default */\n" +
				".b-accented,\n.border-accented{border-color:" + mix("var(--ui-border-accented)", "var(--un-border-opacity, 100%)") + ";}\n" +
				`.b-t-muted\/50{border-top-color:` + mix("var(--ui-border-muted)", "50%") + ";}",
		},
		{
			name:   "divide",
			tokens: []string{"divide-default"},
			want: "/* layer: properties */\n" +
				supports + "--un-divide-opacity:100%;}}\n" +
				`@property --un-divide-opacity{syntax:"<percentage>";inherits:false;initial-value:100%;}` + "\n" +
				"/* layer: default */\n" +
				".divide-default{\n:where(&>:not(:last-child)){border-color:" + mix("var(--ui-border)", "var(--un-divide-opacity, 100%)") + ";}\n}",
		},
		{
			name:   "not-only",
			tokens: []string{"not-only:text-dimmed", "not-only:first:text-dimmed"},
			want: "/* layer: properties */\n" +
				supports + "--un-text-opacity:100%;}}\n" +
				textProp + "\n" +
				"/* layer: default */\n" +
				`.not-only\:first\:text-dimmed:first-child{` + "\n&:not(*:only-child){" + dimmed + "}\n}\n" +
				`.not-only\:text-dimmed{` + "\n&:not(*:only-child){" + dimmed + "}\n}",
		},
		{
			name:   "data attributes",
			tokens: []string{"data-active:text-dimmed", "not-data-active:text-dimmed"},
			want: "/* layer: properties */\n" +
				supports + "--un-text-opacity:100%;}}\n" +
				textProp + "\n" +
				"/* layer: default */\n" +
				`.data-active\:text-dimmed[data-active],` + "\n" +
				`.not-data-active\:text-dimmed:not([data-active]){` + dimmed + "}",
		},
		{
			name:   "peer data",
			tokens: []string{"not-peer-data-active:text-dimmed"},
			want: "/* layer: properties */\n" +
				supports + "--un-text-opacity:100%;}}\n" +
				textProp + "\n" +
				"/* layer: default */\n" +
				`.not-peer-data-active\:text-dimmed{` + "\n&:is(:where(.peer):not(*[data-active]) ~ *){" + dimmed + "}\n}",
		},
		{
			name:   "before and after",
			tokens: []string{"before:text-muted", "dark:after:text-muted", `before:content-['Hello']`},
			want: "/* layer: properties */\n" +
				supports + `--un-text-opacity:100%;--un-content:"";}}` + "\n" +
				`@property --un-content{syntax:"*";inherits:false;initial-value:"";}` + "\n" +
				textProp + "\n" +
				"/* layer: default */\n" +
				`.before\:content-\[\'Hello\'\]::before{--un-content:'Hello';content:var(--un-content);}` + "\n" +
				`.before\:text-muted::before{` + muted + "content:var(--un-content);}\n" +
				`.dark .dark\:after\:text-muted::after{` + muted + "content:var(--un-content);}",
		},
		{
			name:   "transition",
			tokens: []string{"transition-[color,background]"},
			want: "/* layer: default */\n" +
				`.transition-\[color\,background\]{transition-property:color,background;` +
				"transition-timing-function:var(--un-ease, var(--default-transition-timingFunction));" +
				"transition-duration:var(--un-duration, var(--default-transition-duration));}",
		},
		{
			name:   "nothing recognized",
			tokens: []string{"flex", "p-4"},
			want:   "",
		},
	}

	gen := engine.New(bare(), zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := gen.Generate(context.Background(), tt.tokens)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got := res.CSS(); got != tt.want {
				t.Errorf("Generate() css =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestGenerate_Unmatched(t *testing.T) {
	gen := engine.New(bare(), nil)
	res, err := gen.Generate(context.Background(), []string{"flex", "text-muted", "flex", "", "text-unknown"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if want := []string{"flex", "text-unknown"}; !slices.Equal(res.Unmatched, want) {
		t.Errorf("Unmatched = %q, want %q", res.Unmatched, want)
	}
	if len(res.Utilities) != 1 {
		t.Errorf("Utilities = %d, want 1", len(res.Utilities))
	}
}

func TestGenerate_Defaults(t *testing.T) {
	gen := engine.New(preset.New(preset.Options{}), zap.NewNop())
	res, err := gen.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	css := res.CSS()
	if !strings.HasPrefix(css, "/* layer: preflights */\n/* unocss-nuxt-ui preflight start */") {
		t.Errorf("preflight missing:\n%s", css)
	}
	for _, want := range []string{
		`--un-content:"";}}`,
		`.after\:content-\[\'\'\]::after{--un-content:'';content:var(--un-content);}`,
		`.before\:content-\[\'\'\]::before{--un-content:'';content:var(--un-content);}`,
	} {
		if !strings.Contains(css, want) {
			t.Errorf("css does not contain %q:\n%s", want, css)
		}
	}
}

func TestGenerate_Shortcuts(t *testing.T) {
	off := false
	p := preset.New(preset.Options{Preflights: &off, Safelist: &off, Shortcuts: map[string]string{"text-soft": "text-muted"}})
	res, err := engine.New(p, nil).Generate(context.Background(), []string{"hover:text-soft"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(res.CSS(), `.hover\:text-soft:hover{color:`) {
		t.Errorf("shortcut not expanded:\n%s", res.CSS())
	}
}

func TestGenerate_IndependentPasses(t *testing.T) {
	gen := engine.New(bare(), nil)
	tokens := []string{"bg-muted", "ring-default/20", "group-data-open:fill-inverted"}

	first, err := gen.Generate(context.Background(), tokens)
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.Generate(context.Background(), tokens)
	if err != nil {
		t.Fatal(err)
	}
	if first.CSS() != second.CSS() {
		t.Errorf("passes differ:\n%s\n---\n%s", first.CSS(), second.CSS())
	}
	if first.ID == second.ID {
		t.Error("passes share id")
	}

	var buf bytes.Buffer
	n, err := first.WriteTo(&buf)
	if err != nil || int(n) != buf.Len() || buf.String() != first.CSS() {
		t.Errorf("WriteTo() = %d, %v", n, err)
	}
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.New(bare(), nil).Generate(ctx, []string{"text-muted"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}
