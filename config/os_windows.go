//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// ReportName turns source path into flat archive entry name.
func ReportName(in string) string {
	out := strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		if strings.ContainsRune(`<>":/\|?*`+string(os.PathListSeparator), r) {
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

// EnableColorOutput reports if stream is a console capable of VT100
// sequences and switches that processing on. Requires Windows 10 or later.
func EnableColorOutput(stream *os.File) bool {
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()
	if major, _, err := k.GetIntegerValue("CurrentMajorVersionNumber"); err != nil || major < 10 {
		return false
	}

	const enableVirtualTerminalProcessing uint32 = 0x4

	handle := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(handle, mode|enableVirtualTerminalProcessing) == nil
}
