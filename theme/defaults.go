package theme

import "fmt"

var (
	shadeLadder  = []string{"DEFAULT", "50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}
	paletteNames = []string{"primary", "secondary", "success", "info", "warning", "error", "neutral"}
	radiusScale  = []string{"xs", "sm", "md", "lg", "xl", "2xl", "3xl"}

	defaultRoles = map[TableName][]string{
		Text:       {"dimmed", "muted", "toned", "default", "highlighted", "inverted"},
		Background: {"default", "border", "muted", "elevated", "accented", "inverted"},
		Border:     {"default", "muted", "accented", "inverted", "bg"},
		Ring:       {"default", "muted", "accented", "inverted", "bg"},
		RingOffset: {"default", "muted", "accented", "inverted", "bg"},
		Divide:     {"default", "muted", "accented", "inverted", "bg"},
		Outline:    {"default", "inverted"},
		Stroke:     {"default", "inverted"},
		Fill:       {"default", "inverted"},
	}
)

// RadiusScale returns radius keys from smallest to largest.
func RadiusScale() []string {
	return append([]string(nil), radiusScale...)
}

// Default builds built-in theme. Every call returns freshly allocated tables.
func Default() *Theme {
	return &Theme{
		Colors: defaultPalette(),
		TextColors: map[string]string{
			"dimmed":      "var(--ui-text-dimmed)",
			"muted":       "var(--ui-text-muted)",
			"toned":       "var(--ui-text-toned)",
			"default":     "var(--ui-text)",
			"highlighted": "var(--ui-text-highlighted)",
			"inverted":    "var(--ui-text-inverted)",
		},
		BackgroundColors: map[string]string{
			"default":  "var(--ui-bg)",
			"border":   "var(--ui-border)",
			"muted":    "var(--ui-bg-muted)",
			"elevated": "var(--ui-bg-elevated)",
			"accented": "var(--ui-bg-accented)",
			"inverted": "var(--ui-bg-inverted)",
		},
		BorderColors:     borderLike(),
		RingColors:       borderLike(),
		RingOffsetColors: borderLike(),
		DivideColors:     borderLike(),
		OutlineColors:    outlineLike(),
		StrokeColors:     outlineLike(),
		FillColors:       outlineLike(),
		Radius: map[string]string{
			"xs":  "calc(var(--ui-radius) * 0.5)",
			"sm":  "var(--ui-radius)",
			"md":  "calc(var(--ui-radius) * 1.5)",
			"lg":  "calc(var(--ui-radius) * 2)",
			"xl":  "calc(var(--ui-radius) * 3)",
			"2xl": "calc(var(--ui-radius) * 4)",
			"3xl": "calc(var(--ui-radius) * 6)",
		},
	}
}

func borderLike() map[string]string {
	return map[string]string{
		"default":  "var(--ui-border)",
		"muted":    "var(--ui-border-muted)",
		"accented": "var(--ui-border-accented)",
		"inverted": "var(--ui-border-inverted)",
		"bg":       "var(--ui-bg)",
	}
}

func outlineLike() map[string]string {
	return map[string]string{
		"default":  "var(--ui-border)",
		"inverted": "var(--ui-border-inverted)",
	}
}

func defaultPalette() map[string]Shades {
	palette := make(map[string]Shades, len(paletteNames))
	for _, name := range paletteNames {
		shades := make(Shades, len(shadeLadder))
		for _, shade := range shadeLadder {
			if shade == "DEFAULT" {
				shades[shade] = fmt.Sprintf("var(--ui-%s)", name)
				continue
			}
			shades[shade] = fmt.Sprintf("var(--ui-color-%s-%s)", name, shade)
		}
		palette[name] = shades
	}
	return palette
}
