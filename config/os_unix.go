//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ReportName turns source path into flat archive entry name.
func ReportName(in string) string {
	out := strings.Map(func(r rune) rune {
		if r == os.PathSeparator || r == os.PathListSeparator {
			return '_'
		}
		return r
	}, in)
	out = strings.TrimLeft(out, "._")
	if len(out) == 0 {
		return "_unnamed_"
	}
	return out
}

// EnableColorOutput reports if stream is a terminal.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
