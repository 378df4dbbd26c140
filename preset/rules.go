package preset

import (
	"regexp"
	"strings"

	"uicss/css"
	"uicss/theme"
)

// Match is a successful rule outcome.
type Match struct {
	Rule    string
	Entries css.Entries
	// Nest rewrites are applied by host after all variants, so rule
	// declarations end up inside them.
	Nest []Rewrite
}

// handler receives full submatch slice of the rule pattern. Returning false
// means rule declines and evaluation continues with the next rule.
type handler func(groups []string, reg *Registrar) (*Match, bool)

// Rule is a single utility family: fixed shape pattern plus handler
// validating captured pieces against the theme.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// Table and Prefixes drive autocompletion and utility enumeration,
	// families not tied to a theme table leave Table empty.
	Table    theme.TableName
	Prefixes []string
	// Hint is a literal autocomplete template for families without table.
	Hint string

	handle handler
}

// Match runs rule against the token. Registrations happen only when rule does
// not decline.
func (r *Rule) Match(token string, reg *Registrar) (*Match, bool) {
	groups := r.Pattern.FindStringSubmatch(token)
	if groups == nil {
		return nil, false
	}
	m, ok := r.handle(groups, reg)
	if !ok {
		return nil, false
	}
	m.Rule = r.Name
	return m, true
}

var (
	reText        = regexp.MustCompile(`^text-(\w+)(?:/(\d+))?$`)
	reBackground  = regexp.MustCompile(`^bg-(\w+)(?:/(\d+))?$`)
	reGradient    = regexp.MustCompile(`^(from|to)-([a-z-]+)(?:/(\d{1,3}))?$`)
	reBorder      = regexp.MustCompile(`^(?:b|border|(?:b|border)-([trbl]))-(\w+)(?:/(\d+))?$`)
	reRing        = regexp.MustCompile(`^ring-(\w+)(?:/(\d+))?$`)
	reRingOffset  = regexp.MustCompile(`^ring-offset-(\w+)(?:/(\d+))?$`)
	reDivide      = regexp.MustCompile(`^divide-(\w+)(?:/(\d+))?$`)
	reOutline     = regexp.MustCompile(`^outline-(\w+)(?:/(\d+))?$`)
	reStroke      = regexp.MustCompile(`^stroke-(\w+)(?:/(\d+))?$`)
	reFill        = regexp.MustCompile(`^fill-(\w+)(?:/(\d+))?$`)
	reRawProperty = regexp.MustCompile(`^(text|bg|ring|caret|fill)-(--[\w-]+|\w+)(?:/(\d+))?$`)
	reTransition  = regexp.MustCompile(`^transition-\[([a-z-]+(?:,[a-z-]+)*)\]$`)
)

// DivideNest is the selector every divide utility nests its declarations
// under.
const DivideNest = ":where(&>:not(:last-child))"

var borderSides = map[string]string{
	"t": "top",
	"r": "right",
	"b": "bottom",
	"l": "left",
}

var rawProperties = map[string]string{
	"text":  "color",
	"bg":    "background-color",
	"ring":  "--un-ring-color",
	"caret": "caret-color",
	"fill":  "fill",
}

func (p *Preset) buildRules() []Rule {
	return []Rule{
		{Name: "text", Pattern: reText, Table: theme.Text, Prefixes: []string{"text-"},
			handle: p.tableColor(theme.Text, "text", "color")},
		{Name: "bg", Pattern: reBackground, Table: theme.Background, Prefixes: []string{"bg-"},
			handle: p.tableColor(theme.Background, "bg", "background-color")},
		{Name: "gradient", Pattern: reGradient, Table: theme.Background, Prefixes: []string{"from-", "to-"},
			handle: p.gradient},
		{Name: "border", Pattern: reBorder, Table: theme.Border,
			Prefixes: []string{"border-", "b-", "b-t-", "b-r-", "b-b-", "b-l-"},
			handle:   p.border},
		{Name: "ring", Pattern: reRing, Table: theme.Ring, Prefixes: []string{"ring-"},
			handle: p.tableColor(theme.Ring, "ring", "--un-ring-color")},
		{Name: "ring-offset", Pattern: reRingOffset, Table: theme.RingOffset, Prefixes: []string{"ring-offset-"},
			handle: p.tableColor(theme.RingOffset, "ring-offset", "--un-ring-offset-color")},
		{Name: "divide", Pattern: reDivide, Table: theme.Divide, Prefixes: []string{"divide-"},
			handle: p.divide},
		{Name: "outline", Pattern: reOutline, Table: theme.Outline, Prefixes: []string{"outline-"},
			handle: p.tableColor(theme.Outline, "outline", "outline-color")},
		{Name: "stroke", Pattern: reStroke, Table: theme.Stroke, Prefixes: []string{"stroke-"},
			handle: p.tableColor(theme.Stroke, "stroke", "stroke")},
		{Name: "fill", Pattern: reFill, Table: theme.Fill, Prefixes: []string{"fill-"},
			handle: p.tableColor(theme.Fill, "fill", "fill")},
		{Name: "raw-property", Pattern: reRawProperty,
			handle: p.rawProperty},
		{Name: "transition", Pattern: reTransition, Hint: "transition-[prop1,prop2]",
			handle: transition},
	}
}

// colorEntry resolves role in the table and produces single color-mix
// declaration, registering opacity property of the channel.
func (p *Preset) colorEntry(table theme.TableName, role, digits, channel, property string, reg *Registrar) (css.Entries, bool) {
	color, ok := p.theme.Lookup(table, role)
	if !ok {
		return nil, false
	}
	reg.Register(OpacityProperty(channel))
	return css.Entries{{Property: property, Value: ColorMix(p.space, color, Opacity(digits, channel))}}, true
}

func (p *Preset) tableColor(table theme.TableName, channel, property string) handler {
	return func(groups []string, reg *Registrar) (*Match, bool) {
		entries, ok := p.colorEntry(table, groups[1], groups[2], channel, property, reg)
		if !ok {
			return nil, false
		}
		return &Match{Entries: entries}, true
	}
}

func (p *Preset) gradient(groups []string, reg *Registrar) (*Match, bool) {
	position := groups[1]
	entries, ok := p.colorEntry(theme.Background, groups[2], groups[3], position, "--un-gradient-"+position, reg)
	if !ok {
		return nil, false
	}
	return &Match{Entries: entries}, true
}

func (p *Preset) border(groups []string, reg *Registrar) (*Match, bool) {
	channel, property := "border", "border-color"
	if side := borderSides[groups[1]]; len(side) > 0 {
		channel = "border-" + side
		property = "border-" + side + "-color"
	}
	entries, ok := p.colorEntry(theme.Border, groups[2], groups[3], channel, property, reg)
	if !ok {
		return nil, false
	}
	return &Match{Entries: entries}, true
}

func (p *Preset) divide(groups []string, reg *Registrar) (*Match, bool) {
	entries, ok := p.colorEntry(theme.Divide, groups[1], groups[2], "divide", "border-color", reg)
	if !ok {
		return nil, false
	}
	return &Match{Entries: entries, Nest: []Rewrite{Nest(DivideNest)}}, true
}

// rawProperty handles colors given as custom property name. Such tokens come
// out of variant group expansion ("text-(--x)" becomes "text---x"), anything
// else is left to other rules.
func (p *Preset) rawProperty(groups []string, reg *Registrar) (*Match, bool) {
	prefix, name := groups[1], groups[2]
	if !strings.HasPrefix(groups[0], prefix+"---") {
		return nil, false
	}
	reg.Register(OpacityProperty(prefix))
	return &Match{Entries: css.Entries{{
		Property: rawProperties[prefix],
		Value:    ColorMix(p.space, "var("+name+")", Opacity(groups[3], prefix)),
	}}}, true
}

func transition(groups []string, _ *Registrar) (*Match, bool) {
	return &Match{Entries: css.Entries{
		{Property: "transition-property", Value: groups[1]},
		{Property: "transition-timing-function", Value: "var(--un-ease, var(--default-transition-timingFunction))"},
		{Property: "transition-duration", Value: "var(--un-duration, var(--default-transition-duration))"},
	}}, true
}
