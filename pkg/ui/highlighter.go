package ui

import (
	"strings"

	"sqltok/pkg/lexer"

	"github.com/charmbracelet/lipgloss"
)

var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER",
	"ON", "AS", "INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"CREATE", "TABLE", "DROP", "ALTER", "ADD", "COLUMN", "PRIMARY", "KEY",
	"FOREIGN", "REFERENCES", "INDEX", "UNIQUE", "NOT", "NULL", "DEFAULT",
	"AND", "OR", "IN", "EXISTS", "BETWEEN", "LIKE", "LIMIT", "OFFSET",
	"ORDER", "BY", "GROUP", "HAVING", "DISTINCT", "ALL", "UNION", "EXCEPT",
	"INTERSECT", "CASE", "WHEN", "THEN", "ELSE", "END", "WITH", "RECURSIVE",
	"VIEW", "ARRAY", "TUPLE", "FORMAT", "PREWHERE", "SAMPLE", "FINAL",
}

// SpanClass is the styling category a token belongs to.
type SpanClass int

const (
	ClassPlain SpanClass = iota
	ClassKeyword
	ClassIdentifier
	ClassString
	ClassNumber
	ClassOperator
	ClassComment
	ClassError
)

// Highlighter renders source text with per-token styling, driven by the
// lexer rather than by whitespace splitting so quoted spans, comments
// and glued tokens are styled exactly as they were scanned.
type Highlighter struct {
	keywords map[string]bool
	styles   map[SpanClass]lipgloss.Style
}

func NewHighlighter() *Highlighter {
	h := &Highlighter{
		keywords: make(map[string]bool),
		styles:   make(map[SpanClass]lipgloss.Style),
	}
	for _, kw := range sqlKeywords {
		h.keywords[kw] = true
	}

	h.styles[ClassKeyword] = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF79C6")).
		Bold(true)
	h.styles[ClassIdentifier] = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8BE9FD"))
	h.styles[ClassString] = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F1FA8C"))
	h.styles[ClassNumber] = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#BD93F9"))
	h.styles[ClassOperator] = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFB86C"))
	h.styles[ClassComment] = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6272A4")).
		Italic(true)
	h.styles[ClassError] = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(errorColor).
		Bold(true)

	return h
}

// Classify maps a token to its styling category. Bare words are
// keywords only by upper-cased table lookup; the lexer itself has no
// keyword notion.
func (h *Highlighter) Classify(tok lexer.Token) SpanClass {
	switch {
	case tok.IsError():
		return ClassError
	case tok.Type == lexer.Comment:
		return ClassComment
	case tok.Type == lexer.StringLiteral:
		return ClassString
	case tok.Type == lexer.Number:
		return ClassNumber
	case tok.Type == lexer.QuotedIdentifier:
		return ClassIdentifier
	case tok.Type == lexer.BareWord:
		if h.keywords[strings.ToUpper(string(tok.Text))] {
			return ClassKeyword
		}
		return ClassIdentifier
	case tok.Type == lexer.Whitespace, tok.Type == lexer.EndOfStream:
		return ClassPlain
	default:
		return ClassOperator
	}
}

// Highlight tokenizes src and re-renders it with styling. The styled
// output contains every input byte in order, so the text reads the same
// as what was scanned.
func (h *Highlighter) Highlight(src string) string {
	var b strings.Builder
	for _, tok := range lexer.Tokenize([]byte(src)) {
		class := h.Classify(tok)
		if class == ClassPlain {
			b.Write(tok.Text)
			continue
		}
		b.WriteString(h.styles[class].Render(string(tok.Text)))
	}
	return b.String()
}
