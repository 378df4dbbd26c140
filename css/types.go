package css

import (
	"strings"
)

// Layer names output section utility belongs to.
type Layer string

const (
	LayerPreflights Layer = "preflights"
	LayerProperties Layer = "properties"
	LayerDefault    Layer = "default"
)

// Entry is a single property declaration.
type Entry struct {
	Property string
	Value    string
}

// Entries is an ordered declaration list, output order is insertion order.
type Entries []Entry

// Has reports if any of the properties is declared.
func (e Entries) Has(props ...string) bool {
	for _, entry := range e {
		for _, p := range props {
			if entry.Property == p {
				return true
			}
		}
	}
	return false
}

// Get returns value of the first declaration of the property.
func (e Entries) Get(prop string) (string, bool) {
	for _, entry := range e {
		if entry.Property == prop {
			return entry.Value, true
		}
	}
	return "", false
}

// Body renders declarations the way they appear inside a block: "p:v;p:v;".
func (e Entries) Body() string {
	var b strings.Builder
	for _, entry := range e {
		b.WriteString(entry.Property)
		b.WriteByte(':')
		b.WriteString(entry.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// Clone returns independent copy.
func (e Entries) Clone() Entries {
	if e == nil {
		return nil
	}
	return append(Entries(nil), e...)
}

// PseudoElement represents which pseudo-element a selector targets.
type PseudoElement int

const (
	PseudoNone   PseudoElement = iota // No pseudo-element
	PseudoBefore                      // ::before
	PseudoAfter                       // ::after
)

// String returns the CSS representation of the pseudo-element.
func (p PseudoElement) String() string {
	switch p {
	case PseudoBefore:
		return "::before"
	case PseudoAfter:
		return "::after"
	default:
		return ""
	}
}

// PseudoOf detects ::before or ::after pseudo-element in selector. Escaped
// colons in class names are never mistaken for pseudo-elements.
func PseudoOf(selector string) PseudoElement {
	for i := 0; i+1 < len(selector); i++ {
		switch selector[i] {
		case '\\':
			// skip escaped character
			i++
			continue
		case ':':
		default:
			continue
		}
		if selector[i+1] != ':' {
			continue
		}
		name := selector[i+2:]
		if end := strings.IndexFunc(name, func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-')
		}); end >= 0 {
			name = name[:end]
		}
		switch strings.ToLower(name) {
		case "before":
			return PseudoBefore
		case "after":
			return PseudoAfter
		}
		i++
	}
	return PseudoNone
}

// PropertyRule is a custom property registration (@property).
type PropertyRule struct {
	Name         string
	Syntax       string
	Inherits     bool
	InitialValue string
}

// String renders registration in compact form.
func (p PropertyRule) String() string {
	var b strings.Builder
	b.WriteString("@property ")
	b.WriteString(p.Name)
	b.WriteString(`{syntax:"`)
	b.WriteString(cssEscapeDoubleQuoted(p.Syntax))
	b.WriteString(`";inherits:`)
	if p.Inherits {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
	b.WriteString(";initial-value:")
	b.WriteString(p.InitialValue)
	b.WriteString(";}")
	return b.String()
}

// Rule is a parsed style rule.
type Rule struct {
	Selectors []string
	Entries   Entries
	// Context is the prelude of enclosing conditional group rule (@media,
	// @supports, @layer), empty for top level rules.
	Context string
}

// Stylesheet is a parsed stylesheet.
type Stylesheet struct {
	Rules      []Rule
	Properties []PropertyRule
	Warnings   []string
}

// CustomProperties returns every custom property declared by any rule.
func (s *Stylesheet) CustomProperties() map[string]string {
	props := make(map[string]string)
	for _, r := range s.Rules {
		for _, e := range r.Entries {
			if strings.HasPrefix(e.Property, "--") {
				props[e.Property] = e.Value
			}
		}
	}
	return props
}

// RulesBySelector returns all rules whose selector list has the selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var rules []Rule
	for _, r := range s.Rules {
		for _, sel := range r.Selectors {
			if sel == selector {
				rules = append(rules, r)
				break
			}
		}
	}
	return rules
}
