package engine

import (
	"path/filepath"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// SourceKind selects extraction strategy.
type SourceKind int

const (
	SourceText SourceKind = iota
	SourceHTML
)

func (k SourceKind) String() string {
	switch k {
	case SourceHTML:
		return "html"
	default:
		return "text"
	}
}

// KindOf guesses source kind from file name.
func KindOf(name string) SourceKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return SourceHTML
	}
	return SourceText
}

// Extract returns candidate tokens found in data in order of appearance,
// duplicates included. Candidates are not validated, generator drops what no
// rule recognizes.
func Extract(data []byte, kind SourceKind) []string {
	if kind == SourceHTML {
		return extractHTML(data)
	}
	return splitCandidates(ExpandVariantGroups(string(data)))
}

func extractHTML(data []byte) []string {
	var res []string
	lexer := html.NewLexer(parse.NewInputBytes(data))
	for {
		tt, _ := lexer.Next()
		switch tt {
		case html.ErrorToken:
			// lexer.Err() is io.EOF at the end of input, anything else is
			// malformed markup - keep what was collected so far
			return res
		case html.AttributeToken:
			if !strings.EqualFold(string(lexer.AttrKey()), "class") {
				continue
			}
			value := strings.Trim(string(lexer.AttrVal()), `"'`)
			res = append(res, strings.Fields(ExpandVariantGroups(value))...)
		}
	}
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v', '"', '`', '<', '>', '{', '}', ';', '=':
		return true
	}
	return false
}

func splitCandidates(s string) []string {
	var res []string
	for _, field := range strings.FieldsFunc(s, isSeparator) {
		field = strings.TrimRight(field, ",")
		// array class binding: ['text-muted', 'bg-default']
		if strings.HasPrefix(field, "['") {
			field = field[1:]
		}
		if !strings.Contains(field, "[") {
			field = strings.TrimRight(field, "]")
		}
		switch {
		case len(field) > 3 && field[0] == '\'' && strings.HasSuffix(field, "':"):
			// object key of class binding: { 'text-muted': active }
			field = field[1 : len(field)-2]
		case !strings.Contains(field, "["):
			// single quoted string literal, but keep quotes inside brackets
			field = strings.Trim(field, "'")
		}
		if len(field) > 0 {
			res = append(res, field)
		}
	}
	return res
}
