package preset

import (
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// Autocomplete returns templates describing recognized utilities, one per
// rule prefix: "text-(dimmed|muted|...)".
func (p *Preset) Autocomplete() []string {
	var res []string
	for _, r := range p.rules {
		if len(r.Table) == 0 {
			if len(r.Hint) > 0 {
				res = append(res, r.Hint)
			}
			continue
		}
		roles := strings.Join(p.theme.Roles(r.Table), "|")
		for _, prefix := range r.Prefixes {
			res = append(res, prefix+"("+roles+")")
		}
	}
	return res
}

// Utilities enumerates every concrete table backed token preset recognizes
// without opacity modifier, naturally sorted.
func (p *Preset) Utilities() []string {
	seen := make(map[string]struct{})
	var res []string
	for _, r := range p.rules {
		if len(r.Table) == 0 {
			continue
		}
		for _, prefix := range r.Prefixes {
			for _, role := range p.theme.Roles(r.Table) {
				token := prefix + role
				if _, ok := seen[token]; ok {
					continue
				}
				seen[token] = struct{}{}
				res = append(res, token)
			}
		}
	}
	slices.SortFunc(res, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return res
}
