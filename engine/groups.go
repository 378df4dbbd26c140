package engine

import (
	"regexp"
	"strings"
)

// variant group: prefix ending with ':' or '-', parenthesized items and
// optional opacity modifier applied to each item.
var reVariantGroup = regexp.MustCompile("([^\\s()\"'`<>=]*[:-])\\(([^()]*)\\)(/\\d+)?")

const maxGroupDepth = 8

// ExpandVariantGroups rewrites "hover:(a b)" into "hover:a hover:b" and
// "text-(--x)" into "text---x". Nested groups are expanded inside out.
func ExpandVariantGroups(s string) string {
	for range maxGroupDepth {
		expanded := reVariantGroup.ReplaceAllStringFunc(s, func(group string) string {
			m := reVariantGroup.FindStringSubmatch(group)
			prefix, items, modifier := m[1], strings.Fields(m[2]), m[3]
			if len(items) == 0 {
				return group
			}
			out := make([]string, 0, len(items))
			for _, item := range items {
				out = append(out, prefix+item+modifier)
			}
			return strings.Join(out, " ")
		})
		if expanded == s {
			break
		}
		s = expanded
	}
	return s
}
