package css_test

import (
	"testing"

	"uicss/css"
)

func TestEscapeClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"text-muted", "text-muted"},
		{"text-muted/50", `text-muted\/50`},
		{"not-only:first:text-dimmed", `not-only\:first\:text-dimmed`},
		{"transition-[color,background]", `transition-\[color\,background\]`},
		{"before:content-['Hello']", `before\:content-\[\'Hello\'\]`},
		{"text---ui-border", "text---ui-border"},
		{"2xl", `\32 xl`},
		{"-", `\-`},
		{"a.b", `a\.b`},
		{"w-1/2", `w-1\/2`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := css.EscapeClass(tt.in); got != tt.want {
				t.Errorf("EscapeClass(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
	if got := css.ClassSelector("b-muted"); got != ".b-muted" {
		t.Errorf("ClassSelector() = %q", got)
	}
}

func TestPseudoOf(t *testing.T) {
	tests := []struct {
		selector string
		want     css.PseudoElement
	}{
		{`.before\:text-red::before`, css.PseudoBefore},
		{`.dark .dark\:after\:text-red::after`, css.PseudoAfter},
		{`.before\:text-red`, css.PseudoNone},
		{`.x:hover`, css.PseudoNone},
		{`.x::placeholder`, css.PseudoNone},
		{`.x::after:hover`, css.PseudoAfter},
		{`.x::BEFORE`, css.PseudoBefore},
		{``, css.PseudoNone},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			if got := css.PseudoOf(tt.selector); got != tt.want {
				t.Errorf("PseudoOf(%q) = %v, want %v", tt.selector, got, tt.want)
			}
		})
	}
	if css.PseudoBefore.String() != "::before" || css.PseudoAfter.String() != "::after" || css.PseudoNone.String() != "" {
		t.Error("unexpected pseudo-element names")
	}
}

func TestEntries(t *testing.T) {
	e := css.Entries{
		{Property: "--un-content", Value: "'x'"},
		{Property: "content", Value: "var(--un-content)"},
	}
	if !e.Has("content") || !e.Has("nope", "--un-content") || e.Has("color") {
		t.Error("Has() returned unexpected result")
	}
	if got := e.Body(); got != "--un-content:'x';content:var(--un-content);" {
		t.Errorf("Body() = %q", got)
	}
	c := e.Clone()
	c[0].Value = "changed"
	if e[0].Value != "'x'" {
		t.Error("Clone() shares storage")
	}
	if v, ok := e.Get("content"); !ok || v != "var(--un-content)" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
}
