package preset

// ColorMix blends color reference at given opacity against full transparency
// in the requested color space. Identical inputs always produce identical
// output, aliasing utilities rely on that.
func ColorMix(space, color, opacity string) string {
	return "color-mix(in " + space + ", " + color + " " + opacity + ", transparent)"
}

// OpacityProperty names custom property carrying deferred opacity of the
// channel ("text", "border-top", ...).
func OpacityProperty(channel string) string {
	return "--un-" + channel + "-opacity"
}

// OpacityVar references channel opacity property with 100% fallback.
func OpacityVar(channel string) string {
	return "var(" + OpacityProperty(channel) + ", 100%)"
}

// Opacity returns literal percentage when digits are present and deferred
// channel reference otherwise. Digits are not range checked: "150" yields
// "150%".
func Opacity(digits, channel string) string {
	if len(digits) > 0 {
		return digits + "%"
	}
	return OpacityVar(channel)
}
