package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into flat list of rules. It understands
// conditional group rules (@media, @supports, @layer) and custom property
// registrations, other at-rules are skipped.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	p.parseBlock(parser, sheet, "", false)
	return sheet
}

// parseBlock consumes grammar until end of input or, when nested is set, until
// the end of enclosing at-rule block.
func (p *Parser) parseBlock(parser *css.Parser, sheet *Stylesheet, context string, nested bool) {
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if p.finished(parser, sheet) {
				return
			}

		case css.EndAtRuleGrammar:
			if nested {
				return
			}

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			prelude := joinTokens(parser.Values())
			switch atRule {
			case "@media", "@supports", "@layer":
				inner := strings.TrimSpace(atRule + " " + prelude)
				if context != "" {
					inner = context + " " + inner
				}
				p.parseBlock(parser, sheet, inner, true)
			case "@property":
				sheet.Properties = append(sheet.Properties, p.parseProperty(parser, prelude))
			default:
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			entries := p.parseDeclarations(parser, sheet)
			if len(selectors) == 0 {
				sheet.Warnings = append(sheet.Warnings, "ruleset without selector")
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{
				Selectors: selectors,
				Entries:   entries,
				Context:   context,
			})
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses declarations, custom properties included, until
// EndRulesetGrammar. Order of declarations is preserved.
func (p *Parser) parseDeclarations(parser *css.Parser, sheet *Stylesheet) Entries {
	var entries Entries
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if p.finished(parser, sheet) {
				return entries
			}

		case css.EndRulesetGrammar:
			return entries

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			entries = append(entries, Entry{
				Property: string(data),
				Value:    joinTokens(parser.Values()),
			})
		}
	}
}

// parseProperty parses @property block. Parser does not know this at-rule and
// hands its body over as raw tokens.
func (p *Parser) parseProperty(parser *css.Parser, name string) PropertyRule {
	prop := PropertyRule{Name: strings.TrimSpace(name)}

	var body strings.Builder
	for done := false; !done; {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			done = true
		default:
			body.Write(data)
		}
	}

	for decl := range strings.SplitSeq(body.String(), ";") {
		key, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "syntax":
			prop.Syntax = unquote(value)
		case "inherits":
			prop.Inherits = strings.EqualFold(value, "true")
		case "initial-value":
			prop.InitialValue = value
		}
	}
	return prop
}

// finished reports end of input, any other error is recorded and parsing
// continues with the next grammar.
func (p *Parser) finished(parser *css.Parser, sheet *Stylesheet) bool {
	err := parser.Err()
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
	p.log.Debug("CSS parse error", zap.Error(err))
	return false
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// VarReferences returns names of custom properties referenced with var() in
// value, in order of appearance.
func VarReferences(value string) []string {
	var (
		refs   []string
		lexer  = css.NewLexer(parse.NewInputString(value))
		primed bool
	)
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return refs
		case css.FunctionToken:
			primed = strings.EqualFold(string(data), "var(")
		case css.WhitespaceToken:
			continue
		case css.IdentToken, css.CustomPropertyNameToken:
			if primed && strings.HasPrefix(string(data), "--") {
				refs = append(refs, string(data))
			}
			primed = false
		default:
			primed = false
		}
	}
}

// joinTokens restores raw text of token list.
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
