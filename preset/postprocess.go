package preset

import (
	"uicss/css"
)

// Utility is a fully resolved utility as host hands it to post-processing.
type Utility struct {
	Layer    css.Layer
	Class    string
	Selector string
	Parents  []string
	Entries  css.Entries
}

// PseudoElement reports pseudo-element targeted by any level of the selector
// chain.
func (u *Utility) PseudoElement() css.PseudoElement {
	for _, sel := range u.Parents {
		if pe := css.PseudoOf(sel); pe != css.PseudoNone {
			return pe
		}
	}
	return css.PseudoOf(u.Selector)
}

// PostProcess makes ::before and ::after utilities render by supplying content
// declaration unless utility already sets one. Registration layer is left
// alone.
func PostProcess(u *Utility) {
	if u == nil || u.Layer == css.LayerProperties {
		return
	}
	if u.PseudoElement() == css.PseudoNone {
		return
	}
	if u.Entries.Has("content", "--un-content") {
		return
	}
	u.Entries = append(u.Entries, css.Entry{Property: "content", Value: "var(--un-content)"})
}
