// Package diag turns error tokens produced by the lexer into structured,
// user-facing diagnostics with stable codes, positions and hints.
package diag

import (
	"bytes"
	"fmt"
	"strings"

	"sqltok/pkg/lexer"
)

// Diagnostic describes one malformed construct found while tokenizing.
type Diagnostic struct {
	// Code is a stable identifier for the failure (e.g. "SINGLE_QUOTE_NOT_CLOSED").
	Code string

	// Message is a human-readable description of what went wrong.
	Message string

	// Hint suggests how the user might fix the input. May be empty.
	Hint string

	// Line and Col locate the start of the offending span, 1-based.
	Line int
	Col  int

	// Tok is the error token this diagnostic was built from.
	Tok lexer.Token
}

type errorInfo struct {
	code    string
	message string
	hint    string
}

var errorCatalog = map[lexer.TokenType]errorInfo{
	lexer.ErrorWordWithoutWhitespace: {
		code:    "WORD_WITHOUT_WHITESPACE",
		message: "word glued to the previous token",
		hint:    "separate identifiers and literals with whitespace",
	},
	lexer.ErrorSingleQuoteIsNotClosed: {
		code:    "SINGLE_QUOTE_NOT_CLOSED",
		message: "string literal is not closed",
		hint:    "add a closing ', or double an embedded quote as ''",
	},
	lexer.ErrorDoubleQuoteIsNotClosed: {
		code:    "DOUBLE_QUOTE_NOT_CLOSED",
		message: "quoted identifier is not closed",
		hint:    `add a closing "`,
	},
	lexer.ErrorBackQuoteIsNotClosed: {
		code:    "BACK_QUOTE_NOT_CLOSED",
		message: "back-quoted identifier is not closed",
		hint:    "add a closing `",
	},
	lexer.ErrorMultilineCommentIsNotClosed: {
		code:    "MULTILINE_COMMENT_NOT_CLOSED",
		message: "block comment is not closed",
		hint:    "add */ (block comments do not nest)",
	},
	lexer.ErrorSingleExclamationMark: {
		code:    "SINGLE_EXCLAMATION_MARK",
		message: "'!' is only valid as part of !=",
		hint:    "use != for inequality",
	},
	lexer.ErrorSinglePipeMark: {
		code:    "SINGLE_PIPE_MARK",
		message: "'|' is only valid as part of ||",
		hint:    "use || for concatenation",
	},
	lexer.Error: {
		code:    "UNRECOGNIZED_BYTE",
		message: "unrecognized character",
	},
}

// FromToken builds a Diagnostic for tok. The second return is false
// when tok is not an error token. src must be the buffer tok was
// scanned from.
func FromToken(src []byte, tok lexer.Token) (Diagnostic, bool) {
	info, ok := errorCatalog[tok.Type]
	if !ok {
		return Diagnostic{}, false
	}

	line, col := Position(src, tok.Pos)
	return Diagnostic{
		Code:    info.code,
		Message: info.message,
		Hint:    info.hint,
		Line:    line,
		Col:     col,
		Tok:     tok,
	}, true
}

// Collect tokenizes src and returns a diagnostic for every error token,
// in source order.
func Collect(src []byte) []Diagnostic {
	var diags []Diagnostic
	for _, tok := range lexer.Tokenize(src) {
		if d, ok := FromToken(src, tok); ok {
			diags = append(diags, d)
		}
	}
	return diags
}

// Position converts a byte offset into 1-based line and column numbers.
func Position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line = 1 + bytes.Count(src[:offset], []byte{'\n'})
	lineStart := bytes.LastIndexByte(src[:offset], '\n') + 1
	return line, offset - lineStart + 1
}

// Render formats the diagnostic for terminal output: position, code and
// message, followed by the source line with a caret marking the span.
func (d Diagnostic) Render(src []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: %s: %s\n", d.Line, d.Col, d.Code, d.Message)

	lineText := sourceLine(src, d.Tok.Pos)
	fmt.Fprintf(&b, "  %s\n", lineText)

	markerLen := len(d.Tok.Text)
	if lineEnd := len(lineText) - (d.Col - 1); markerLen > lineEnd {
		markerLen = lineEnd
	}
	if markerLen < 1 {
		markerLen = 1
	}
	fmt.Fprintf(&b, "  %s%s", strings.Repeat(" ", d.Col-1), strings.Repeat("^", markerLen))

	if d.Hint != "" {
		fmt.Fprintf(&b, "\n  hint: %s", d.Hint)
	}
	return b.String()
}

func sourceLine(src []byte, offset int) string {
	if offset > len(src) {
		offset = len(src)
	}
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	end := bytes.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	return string(src[start:end])
}
