package preset

import (
	"slices"
	"strings"

	"uicss/css"
)

// Registrar accumulates custom property registrations requested during one
// compilation pass. It is owned by the pass and must not be shared between
// concurrently running passes. Zero value is ready to use.
type Registrar struct {
	props map[string]css.PropertyRule
	order []string
}

// NewRegistrar returns empty registrar.
func NewRegistrar() *Registrar {
	return &Registrar{props: make(map[string]css.PropertyRule)}
}

// PercentageProperty is the registration schema used for opacity channels.
func PercentageProperty(name string) css.PropertyRule {
	return css.PropertyRule{
		Name:         name,
		Syntax:       "<percentage>",
		Inherits:     false,
		InitialValue: "100%",
	}
}

// Register records request for opacity property, repeated requests are
// no-ops.
func (r *Registrar) Register(name string) {
	r.RegisterProperty(PercentageProperty(name))
}

// RegisterProperty records arbitrary registration, first request for the name
// wins.
func (r *Registrar) RegisterProperty(prop css.PropertyRule) {
	if r.props == nil {
		r.props = make(map[string]css.PropertyRule)
	}
	if _, exists := r.props[prop.Name]; exists {
		return
	}
	r.props[prop.Name] = prop
	r.order = append(r.order, prop.Name)
}

// Len returns number of distinct registrations.
func (r *Registrar) Len() int {
	return len(r.order)
}

// Requested returns registrations in the order they were first requested.
// State is not changed.
func (r *Registrar) Requested() []css.PropertyRule {
	res := make([]css.PropertyRule, 0, len(r.order))
	for _, name := range r.order {
		res = append(res, r.props[name])
	}
	return res
}

// Flush returns deduplicated registrations sorted by property name and
// clears state.
func (r *Registrar) Flush() []css.PropertyRule {
	res := r.Requested()
	slices.SortFunc(res, func(a, b css.PropertyRule) int {
		return strings.Compare(a.Name, b.Name)
	})
	r.props = make(map[string]css.PropertyRule)
	r.order = nil
	return res
}
