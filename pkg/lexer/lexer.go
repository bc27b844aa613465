package lexer

// Lexer scans a source buffer into tokens in a single forward pass.
// It borrows the buffer for its lifetime and never mutates or copies it.
// A Lexer is not safe for concurrent use; independent Lexers over the
// same read-only buffer are.
type Lexer struct {
	src []byte
	pos int
}

// New returns a Lexer positioned at the start of src.
func New(src []byte) *Lexer {
	return &Lexer{src: src}
}

// NextToken scans and returns the next token, advancing the cursor past
// it. Malformed input produces a token with an error type rather than a
// Go error; the caller decides whether that aborts anything. Once
// EndOfStream is returned, every further call returns EndOfStream again.
func (l *Lexer) NextToken() Token {
	if l.pos >= len(l.src) {
		return l.makeToken(EndOfStream, len(l.src))
	}

	begin := l.pos
	ch := l.src[l.pos]

	switch {
	case isWhitespace(ch):
		l.pos++
		for l.pos < len(l.src) && isWhitespace(l.src[l.pos]) {
			l.pos++
		}
		return l.makeToken(Whitespace, begin)

	case isLetter(ch) || ch == '_':
		// Two word tokens glued together without a separator. The
		// look-behind inspects the byte before this token's start,
		// which belongs to the previous token's span.
		if l.pos > 0 && isWordChar(l.src[l.pos-1]) {
			l.pos++
			return l.makeToken(ErrorWordWithoutWhitespace, begin)
		}
		l.pos++
		for l.pos < len(l.src) && isWordChar(l.src[l.pos]) {
			l.pos++
		}
		return l.makeToken(BareWord, begin)

	case isDigit(ch):
		return l.scanNumber(begin)
	}

	switch ch {
	case '\'':
		return l.quotedString('\'', StringLiteral, ErrorSingleQuoteIsNotClosed, begin)
	case '"':
		return l.quotedString('"', QuotedIdentifier, ErrorDoubleQuoteIsNotClosed, begin)
	case '`':
		return l.quotedString('`', QuotedIdentifier, ErrorBackQuoteIsNotClosed, begin)

	case '(':
		l.pos++
		return l.makeToken(OpeningRoundBracket, begin)
	case ')':
		l.pos++
		return l.makeToken(ClosingRoundBracket, begin)
	case '[':
		l.pos++
		return l.makeToken(OpeningSquareBracket, begin)
	case ']':
		l.pos++
		return l.makeToken(ClosingSquareBracket, begin)
	case ',':
		l.pos++
		return l.makeToken(Comma, begin)
	case ';':
		l.pos++
		return l.makeToken(Semicolon, begin)

	case '.':
		return l.scanDot(begin)

	case '+':
		l.pos++
		return l.makeToken(Plus, begin)

	case '-':
		// Minus, arrow or start of a line comment.
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '>' {
			l.pos++
			return l.makeToken(Arrow, begin)
		}
		if l.pos < len(l.src) && l.src[l.pos] == '-' {
			l.pos++
			return l.commentUntilEndOfLine(begin)
		}
		return l.makeToken(Minus, begin)

	case '*':
		l.pos++
		return l.makeToken(Asterisk, begin)

	case '/':
		return l.scanSlash(begin)

	case '%':
		l.pos++
		return l.makeToken(Modulo, begin)

	case '=':
		// Both = and == map to Equals.
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
		}
		return l.makeToken(Equals, begin)

	case '!':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return l.makeToken(NotEquals, begin)
		}
		return l.makeToken(ErrorSingleExclamationMark, begin)

	case '<':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return l.makeToken(LessOrEquals, begin)
		}
		if l.pos < len(l.src) && l.src[l.pos] == '>' {
			l.pos++
			return l.makeToken(NotEquals, begin)
		}
		return l.makeToken(Less, begin)

	case '>':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return l.makeToken(GreaterOrEquals, begin)
		}
		return l.makeToken(Greater, begin)

	case '?':
		l.pos++
		return l.makeToken(QuestionMark, begin)
	case ':':
		l.pos++
		return l.makeToken(Colon, begin)

	case '|':
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '|' {
			l.pos++
			return l.makeToken(Concatenation, begin)
		}
		return l.makeToken(ErrorSinglePipeMark, begin)

	default:
		l.pos++
		return l.makeToken(Error, begin)
	}
}

func (l *Lexer) makeToken(t TokenType, begin int) Token {
	return Token{Type: t, Pos: begin, Text: l.src[begin:l.pos]}
}

// scanNumber consumes a numeric literal starting at a digit. After a
// 0x/0b radix prefix only decimal digit bytes are consumed; hex letter
// digits start a separate token.
func (l *Lexer) scanNumber(begin int) Token {
	if l.pos+2 <= len(l.src) && l.src[l.pos] == '0' &&
		(l.src[l.pos+1] == 'x' || l.src[l.pos+1] == 'b') {
		l.pos += 2
	}

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}

	// decimal point
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	l.scanExponent()
	return l.makeToken(Number, begin)
}

// scanExponent consumes an exponent marker (e for decimal, p for hex
// floats) with an optional sign, if one starts at the cursor.
func (l *Lexer) scanExponent() {
	if l.pos+1 >= len(l.src) || (l.src[l.pos] != 'e' && l.src[l.pos] != 'p') {
		return
	}
	l.pos++

	if l.pos+1 < len(l.src) && (l.src[l.pos] == '-' || l.src[l.pos] == '+') {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
}

// scanDot disambiguates '.': right after an identifier, a closing
// bracket or a number it is the qualifier / tuple access operator;
// otherwise it starts a fractional literal with no integer part.
func (l *Lexer) scanDot(begin int) Token {
	if l.pos > 0 {
		prev := l.src[l.pos-1]
		if prev == ')' || prev == ']' || isAlphaNumeric(prev) {
			l.pos++
			return l.makeToken(Dot, begin)
		}
	}

	l.pos++
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	l.scanExponent()
	return l.makeToken(Number, begin)
}

// scanSlash produces Division, a // line comment or a /* */ block
// comment. Block comments do not nest: the first closer terminates the
// token regardless of openers in between.
func (l *Lexer) scanSlash(begin int) Token {
	l.pos++
	if l.pos >= len(l.src) || (l.src[l.pos] != '/' && l.src[l.pos] != '*') {
		return l.makeToken(Division, begin)
	}

	if l.src[l.pos] == '/' {
		l.pos++
		return l.commentUntilEndOfLine(begin)
	}

	l.pos++
	for l.pos+2 <= len(l.src) {
		if l.src[l.pos] == '*' && l.src[l.pos+1] == '/' {
			l.pos += 2
			return l.makeToken(Comment, begin)
		}
		l.pos++
	}
	l.pos = len(l.src)
	return l.makeToken(ErrorMultilineCommentIsNotClosed, begin)
}

// commentUntilEndOfLine consumes through the end of line or buffer.
// A newline inside a line comment cannot be escaped.
func (l *Lexer) commentUntilEndOfLine(begin int) Token {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	return l.makeToken(Comment, begin)
}

// quotedString scans a delimited span starting at the opening quote.
// A doubled delimiter embeds a literal delimiter and a backslash
// escapes exactly the next byte, whatever it is. On success the cursor
// ends just past the closing delimiter; if the span never closes the
// cursor ends at the buffer end and the failure type is returned. The
// span is returned raw, escapes included; decoding is the consumer's
// job. All three quoted forms share this routine.
func (l *Lexer) quotedString(quote byte, success, failure TokenType, begin int) Token {
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case quote:
			l.pos++
			if l.pos < len(l.src) && l.src[l.pos] == quote {
				l.pos++
				continue
			}
			return l.makeToken(success, begin)

		case '\\':
			l.pos++
			if l.pos >= len(l.src) {
				return l.makeToken(failure, begin)
			}
			l.pos++

		default:
			l.pos++
		}
	}
	return l.makeToken(failure, begin)
}

// Character classification is ASCII only. Bytes with the high bit set
// are opaque content inside quoted spans and fall into the catch-all
// Error kind as a leading byte.

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNumeric(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

func isWordChar(ch byte) bool {
	return isAlphaNumeric(ch) || ch == '_'
}
