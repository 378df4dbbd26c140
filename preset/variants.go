package preset

import (
	"regexp"
	"slices"
	"strings"

	"uicss/css"
)

// RewriteKind tells how rewrite text changes the selector.
type RewriteKind int

const (
	// RewriteSuffix appends text to the element compound selector.
	RewriteSuffix RewriteKind = iota
	// RewriteNest moves current selector into the parent chain and makes
	// text (containing "&") the new innermost selector.
	RewriteNest
	// RewritePrefix places text in front of the element compound selector
	// as an ancestor.
	RewritePrefix
)

func (k RewriteKind) String() string {
	switch k {
	case RewriteSuffix:
		return "suffix"
	case RewriteNest:
		return "nest"
	case RewritePrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Rewrite is a single selector transformation produced by variant.
type Rewrite struct {
	Kind RewriteKind
	Text string
}

// Suffix makes rewrite appending text to the element compound selector.
func Suffix(text string) Rewrite { return Rewrite{Kind: RewriteSuffix, Text: text} }

// Nest makes rewrite opening nested block, text must contain "&".
func Nest(text string) Rewrite { return Rewrite{Kind: RewriteNest, Text: text} }

// Prefix makes rewrite adding text as an ancestor of the element.
func Prefix(text string) Rewrite { return Rewrite{Kind: RewritePrefix, Text: text} }

// ParentSeparator joins nesting levels in VariantContext.Parent.
const ParentSeparator = " $$ "

// VariantContext is the state variants operate on: remaining matcher text,
// innermost selector and enclosing selectors, outermost first.
type VariantContext struct {
	Matcher  string
	Selector string
	Parents  []string
}

// NewVariantContext starts variant processing for a class.
func NewVariantContext(class string) VariantContext {
	return VariantContext{Matcher: class, Selector: css.ClassSelector(class)}
}

// Parent returns enclosing chain as a single string, empty when not nested.
func (c VariantContext) Parent() string {
	return strings.Join(c.Parents, ParentSeparator)
}

// Nested reports if the context has at least one enclosing level.
func (c VariantContext) Nested() bool {
	return len(c.Parents) > 0
}

// Compose applies rewrite and returns new context, ctx is not modified.
// Suffixes always land on the element's own compound selector, whatever their
// position relative to nesting variants. A pseudo-element combined with a
// nesting variant therefore stays on the outer rule:
// before:not-only:x and not-only:before:x both give
// .x::before{&:not(*:only-child){...}}.
func Compose(ctx VariantContext, rw Rewrite) VariantContext {
	out := VariantContext{
		Matcher:  ctx.Matcher,
		Selector: ctx.Selector,
		Parents:  slices.Clone(ctx.Parents),
	}
	switch rw.Kind {
	case RewriteSuffix:
		if out.Nested() {
			out.Parents[0] += rw.Text
		} else {
			out.Selector += rw.Text
		}
	case RewritePrefix:
		if out.Nested() {
			out.Parents[0] = rw.Text + " " + out.Parents[0]
		} else {
			out.Selector = rw.Text + " " + out.Selector
		}
	case RewriteNest:
		out.Parents = append(out.Parents, out.Selector)
		out.Selector = rw.Text
	}
	return out
}

// Variant is one pipeline stage. Pattern must anchor at the start of the
// matcher and capture the remaining matcher text in its last group.
type Variant struct {
	Name    string
	Pattern *regexp.Regexp
	Build   func(groups []string) Rewrite
}

// Match tries stage against matcher. On success returns the rest of matcher
// and the rewrite to apply.
func (v Variant) Match(matcher string) (string, Rewrite, bool) {
	groups := v.Pattern.FindStringSubmatch(matcher)
	if groups == nil {
		return matcher, Rewrite{}, false
	}
	return groups[len(groups)-1], v.Build(groups), true
}

// ApplyVariants runs stages against ctx.Matcher until none of them matches,
// every successful match restarts from the first stage. Returns final context
// and applied rewrites in order.
func ApplyVariants(ctx VariantContext, variants []Variant) (VariantContext, []Rewrite) {
	var applied []Rewrite
	for {
		matched := false
		for _, v := range variants {
			rest, rw, ok := v.Match(ctx.Matcher)
			if !ok {
				continue
			}
			ctx = Compose(ctx, rw)
			ctx.Matcher = rest
			applied = append(applied, rw)
			matched = true
			break
		}
		if !matched {
			return ctx, applied
		}
	}
}

func attrVariant(name, pattern string, build func(attr string) Rewrite) Variant {
	return Variant{
		Name:    name,
		Pattern: regexp.MustCompile(pattern),
		Build: func(groups []string) Rewrite {
			return build(groups[1])
		},
	}
}

// presetVariants lists stages in evaluation order.
func presetVariants() []Variant {
	return []Variant{
		attrVariant("data", `^data-([a-zA-Z0-9-]+):(.*)$`, func(attr string) Rewrite {
			return Suffix("[data-" + attr + "]")
		}),
		attrVariant("not-data", `^not-data-([a-zA-Z0-9-]+):(.*)$`, func(attr string) Rewrite {
			return Suffix(":not([data-" + attr + "])")
		}),
		attrVariant("group-data", `^group-data-([a-zA-Z0-9-]+):(.*)$`, func(attr string) Rewrite {
			return Nest("&:is(:where(.group)[data-" + attr + "] *)")
		}),
		attrVariant("not-group-data", `^not-group-data-([a-zA-Z0-9-]+):(.*)$`, func(attr string) Rewrite {
			return Nest("&:not(*:is(:where(.group)[data-" + attr + "] *))")
		}),
		attrVariant("group-position", `^group-(first|last|only):(.*)$`, func(pseudo string) Rewrite {
			return Nest("&:is(:where(.group):" + pseudo + "-child *)")
		}),
		attrVariant("group-not-position", `^group-not-(first|last|only):(.*)$`, func(pseudo string) Rewrite {
			return Nest("&:is(:where(.group):not(*:" + pseudo + "-child) *)")
		}),
		{
			Name:    "not-only",
			Pattern: regexp.MustCompile(`^not-only:(.*)$`),
			Build: func([]string) Rewrite {
				return Nest("&:not(*:only-child)")
			},
		},
		attrVariant("peer-data", `^peer-data-([a-zA-Z0-9-]+):(.*)$`, func(attr string) Rewrite {
			return Nest("&:is(:where(.peer)[data-" + attr + "] ~ *)")
		}),
		attrVariant("not-peer-data", `^not-peer-data-([a-zA-Z0-9-]+):(.*)$`, func(attr string) Rewrite {
			return Nest("&:is(:where(.peer):not(*[data-" + attr + "]) ~ *)")
		}),
	}
}
