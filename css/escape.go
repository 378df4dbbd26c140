package css

import (
	"strings"
	"unicode/utf8"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeClass escapes class name so it can be used as class selector (without
// leading dot). Identifier characters are kept, leading digits are written as
// code points, everything else gets backslash prefix.
func EscapeClass(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 8)
	for i, r := range name {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r >= '0' && r <= '9':
			if i == 0 || (i == 1 && name[0] == '-') {
				b.WriteString(`\3`)
				b.WriteRune(r)
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(r)
		case r == '-' && i == 0 && len(name) == 1:
			b.WriteString(`\-`)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_', r >= 0x80:
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			b.WriteByte('\\')
			b.WriteString(hex(r))
			b.WriteByte(' ')
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ClassSelector returns escaped class selector for the name.
func ClassSelector(name string) string {
	return "." + EscapeClass(name)
}

func hex(r rune) string {
	const digits = "0123456789abcdef"
	var buf [8]byte
	i := len(buf)
	for {
		i--
		buf[i] = digits[r&0xf]
		r >>= 4
		if r == 0 {
			break
		}
	}
	return string(buf[i:])
}
