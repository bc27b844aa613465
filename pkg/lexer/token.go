package lexer

// TokenType identifies the syntactic category of a token.
type TokenType int

const (
	// Structural
	Whitespace TokenType = iota
	Comment
	EndOfStream

	// Literals
	Number
	StringLiteral

	// Identifiers
	BareWord
	QuotedIdentifier

	// Punctuation and operators
	OpeningRoundBracket
	ClosingRoundBracket
	OpeningSquareBracket
	ClosingSquareBracket
	Comma
	Semicolon
	Dot
	Arrow
	Plus
	Minus
	Asterisk
	Division
	Modulo
	Equals
	NotEquals
	Less
	LessOrEquals
	Greater
	GreaterOrEquals
	QuestionMark
	Colon
	Concatenation

	// Errors. Each names the construct that failed; the scanner never
	// returns a Go error or panics on malformed input.
	ErrorWordWithoutWhitespace
	ErrorSingleQuoteIsNotClosed
	ErrorDoubleQuoteIsNotClosed
	ErrorBackQuoteIsNotClosed
	ErrorMultilineCommentIsNotClosed
	ErrorSingleExclamationMark
	ErrorSinglePipeMark
	Error
)

var tokenTypeNames = map[TokenType]string{
	Whitespace:                       "Whitespace",
	Comment:                          "Comment",
	EndOfStream:                      "EndOfStream",
	Number:                           "Number",
	StringLiteral:                    "StringLiteral",
	BareWord:                         "BareWord",
	QuotedIdentifier:                 "QuotedIdentifier",
	OpeningRoundBracket:              "OpeningRoundBracket",
	ClosingRoundBracket:              "ClosingRoundBracket",
	OpeningSquareBracket:             "OpeningSquareBracket",
	ClosingSquareBracket:             "ClosingSquareBracket",
	Comma:                            "Comma",
	Semicolon:                        "Semicolon",
	Dot:                              "Dot",
	Arrow:                            "Arrow",
	Plus:                             "Plus",
	Minus:                            "Minus",
	Asterisk:                         "Asterisk",
	Division:                         "Division",
	Modulo:                           "Modulo",
	Equals:                           "Equals",
	NotEquals:                        "NotEquals",
	Less:                             "Less",
	LessOrEquals:                     "LessOrEquals",
	Greater:                          "Greater",
	GreaterOrEquals:                  "GreaterOrEquals",
	QuestionMark:                     "QuestionMark",
	Colon:                            "Colon",
	Concatenation:                    "Concatenation",
	ErrorWordWithoutWhitespace:       "ErrorWordWithoutWhitespace",
	ErrorSingleQuoteIsNotClosed:      "ErrorSingleQuoteIsNotClosed",
	ErrorDoubleQuoteIsNotClosed:      "ErrorDoubleQuoteIsNotClosed",
	ErrorBackQuoteIsNotClosed:        "ErrorBackQuoteIsNotClosed",
	ErrorMultilineCommentIsNotClosed: "ErrorMultilineCommentIsNotClosed",
	ErrorSingleExclamationMark:       "ErrorSingleExclamationMark",
	ErrorSinglePipeMark:              "ErrorSinglePipeMark",
	Error:                            "Error",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// IsError reports whether the token type is one of the error kinds.
func (t TokenType) IsError() bool {
	return t >= ErrorWordWithoutWhitespace && t <= Error
}

// Token is a classified span of source bytes. Text is a subslice of the
// buffer passed to NewLexer, never a copy; Pos is its byte offset into
// that buffer. The caller must keep the buffer alive while tokens
// derived from it are in use.
type Token struct {
	Type TokenType
	Pos  int
	Text []byte
}

// End returns the byte offset one past the last byte of the span.
func (t Token) End() int {
	return t.Pos + len(t.Text)
}

// IsSignificant reports whether a parser should see this token.
// Whitespace and comments are noise between significant tokens.
func (t Token) IsSignificant() bool {
	return t.Type != Whitespace && t.Type != Comment
}

// IsError reports whether this token represents malformed input.
func (t Token) IsError() bool {
	return t.Type.IsError()
}
