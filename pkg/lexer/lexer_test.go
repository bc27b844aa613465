package lexer

import (
	"bytes"
	"testing"
)

// scanAll drives the lexer to EndOfStream and returns the tokens before
// it, failing the test if the call bound is exceeded.
func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	l := New([]byte(src))
	var tokens []Token
	for i := 0; i <= len(src); i++ {
		tok := l.NextToken()
		if tok.Type == EndOfStream {
			return tokens
		}
		tokens = append(tokens, tok)
	}
	t.Fatalf("lexer did not reach EndOfStream within %d calls on %q", len(src)+1, src)
	return nil
}

func expectTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	tokens := scanAll(t, src)
	if len(tokens) != len(want) {
		t.Fatalf("input %q: expected %d tokens, got %d (%v)", src, len(want), len(tokens), tokens)
	}
	for i, tok := range tokens {
		if tok.Type != want[i] {
			t.Errorf("input %q token %d: expected %s, got %s (%q)", src, i, want[i], tok.Type, tok.Text)
		}
	}
	return tokens
}

func TestNextToken_EmptyInput(t *testing.T) {
	l := New(nil)

	tok := l.NextToken()
	if tok.Type != EndOfStream {
		t.Fatalf("expected EndOfStream, got %s", tok.Type)
	}
	if len(tok.Text) != 0 {
		t.Errorf("EndOfStream must carry an empty span, got %q", tok.Text)
	}
}

func TestNextToken_IdempotentTail(t *testing.T) {
	l := New([]byte("a"))

	if tok := l.NextToken(); tok.Type != BareWord {
		t.Fatalf("expected BareWord, got %s", tok.Type)
	}
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != EndOfStream {
			t.Fatalf("call %d after end: expected EndOfStream, got %s", i, tok.Type)
		}
		if tok.Pos != 1 {
			t.Errorf("EndOfStream position moved: expected 1, got %d", tok.Pos)
		}
	}
}

func TestNextToken_SimpleQuery(t *testing.T) {
	expectTypes(t, "SELECT x, y FROM t WHERE id = 1;", []TokenType{
		BareWord, Whitespace, BareWord, Comma, Whitespace, BareWord,
		Whitespace, BareWord, Whitespace, BareWord, Whitespace, BareWord,
		Whitespace, BareWord, Whitespace, Equals, Whitespace, Number,
		Semicolon,
	})
}

func TestNextToken_WhitespaceRun(t *testing.T) {
	tokens := expectTypes(t, " \t\r\n\f\va", []TokenType{Whitespace, BareWord})
	if string(tokens[0].Text) != " \t\r\n\f\v" {
		t.Errorf("whitespace run not maximal: %q", tokens[0].Text)
	}
}

func TestNextToken_BareWord(t *testing.T) {
	tokens := expectTypes(t, "_foo9 bar", []TokenType{BareWord, Whitespace, BareWord})
	if string(tokens[0].Text) != "_foo9" {
		t.Errorf("expected %q, got %q", "_foo9", tokens[0].Text)
	}
}

func TestNextToken_WordAdjacencyGuard(t *testing.T) {
	// A digit is a word character, so a letter right after a number
	// trips the guard one byte at a time.
	tokens := expectTypes(t, "1a", []TokenType{Number, ErrorWordWithoutWhitespace})
	if string(tokens[0].Text) != "1" || string(tokens[1].Text) != "a" {
		t.Errorf("unexpected spans: %q %q", tokens[0].Text, tokens[1].Text)
	}

	expectTypes(t, "123abc", []TokenType{
		Number, ErrorWordWithoutWhitespace, ErrorWordWithoutWhitespace, ErrorWordWithoutWhitespace,
	})

	// After whitespace the guard must not fire.
	expectTypes(t, "1 a", []TokenType{Number, Whitespace, BareWord})

	// First byte of the buffer: nothing to look behind at.
	expectTypes(t, "a", []TokenType{BareWord})
}

func TestNextToken_Numbers(t *testing.T) {
	cases := []struct {
		input string
		spans []string
	}{
		{"0", []string{"0"}},
		{"12345", []string{"12345"}},
		{"1.5", []string{"1.5"}},
		{"1.", []string{"1."}},
		{"1.5e10", []string{"1.5e10"}},
		{"1e-3", []string{"1e-3"}},
		{"2e+7", []string{"2e+7"}},
		{"0x12p4", []string{"0x12p4"}},
	}

	for _, c := range cases {
		tokens := scanAll(t, c.input)
		if len(tokens) != len(c.spans) {
			t.Errorf("input %q: expected %d tokens, got %d", c.input, len(c.spans), len(tokens))
			continue
		}
		for i, span := range c.spans {
			if tokens[i].Type != Number {
				t.Errorf("input %q token %d: expected Number, got %s", c.input, i, tokens[i].Type)
			}
			if string(tokens[i].Text) != span {
				t.Errorf("input %q token %d: expected span %q, got %q", c.input, i, span, tokens[i].Text)
			}
		}
	}
}

func TestNextToken_RadixPrefixConsumesOnlyDecimalDigits(t *testing.T) {
	// Hex letter digits are deliberately not part of the number; the
	// tail lexes separately (and trips the adjacency guard).
	tokens := scanAll(t, "0xFF")
	if tokens[0].Type != Number || string(tokens[0].Text) != "0x" {
		t.Fatalf("expected Number %q first, got %s %q", "0x", tokens[0].Type, tokens[0].Text)
	}
	for _, tok := range tokens[1:] {
		if tok.Type != ErrorWordWithoutWhitespace {
			t.Errorf("expected ErrorWordWithoutWhitespace for %q, got %s", tok.Text, tok.Type)
		}
	}

	tokens = expectTypes(t, "0b101", []TokenType{Number})
	if string(tokens[0].Text) != "0b101" {
		t.Errorf("expected %q, got %q", "0b101", tokens[0].Text)
	}
}

func TestNextToken_RadixPrefixAtBufferEnd(t *testing.T) {
	// Exactly two bytes left: the prefix is still taken, with an empty
	// digit run after it.
	tokens := expectTypes(t, "0x", []TokenType{Number})
	if string(tokens[0].Text) != "0x" {
		t.Errorf("expected %q, got %q", "0x", tokens[0].Text)
	}
}

func TestNextToken_DotDisambiguation(t *testing.T) {
	expectTypes(t, "a.b", []TokenType{BareWord, Dot, BareWord})
	expectTypes(t, "t.*", []TokenType{BareWord, Dot, Asterisk})

	// After a closing bracket the dot is member access.
	expectTypes(t, "f(x).y", []TokenType{
		BareWord, OpeningRoundBracket, BareWord, ClosingRoundBracket, Dot, BareWord,
	})
	expectTypes(t, "a[1].b", []TokenType{
		BareWord, OpeningSquareBracket, Number, ClosingSquareBracket, Dot, BareWord,
	})

	// Number followed by dot: the fraction is consumed by the number
	// scan, and a second dot is member access on the number.
	expectTypes(t, "1.5.e", []TokenType{Number, Dot, BareWord})
}

func TestNextToken_LeadingDotFraction(t *testing.T) {
	tokens := expectTypes(t, ".5", []TokenType{Number})
	if string(tokens[0].Text) != ".5" {
		t.Errorf("expected %q, got %q", ".5", tokens[0].Text)
	}

	tokens = expectTypes(t, ".5e3", []TokenType{Number})
	if string(tokens[0].Text) != ".5e3" {
		t.Errorf("expected %q, got %q", ".5e3", tokens[0].Text)
	}

	// At buffer start there is nothing to look behind at.
	expectTypes(t, ". x", []TokenType{Number, Whitespace, BareWord})

	// After whitespace the dot still starts a fraction.
	expectTypes(t, "a .5", []TokenType{BareWord, Whitespace, Number})
}

func TestNextToken_StringLiterals(t *testing.T) {
	tokens := expectTypes(t, "'hello'", []TokenType{StringLiteral})
	if string(tokens[0].Text) != "'hello'" {
		t.Errorf("span must include the quotes: %q", tokens[0].Text)
	}

	// Doubled quote embeds a literal quote: one token, whole input.
	tokens = expectTypes(t, "'it''s'", []TokenType{StringLiteral})
	if string(tokens[0].Text) != "'it''s'" {
		t.Errorf("doubling not consumed as content: %q", tokens[0].Text)
	}

	// Backslash escapes the next byte unconditionally.
	tokens = expectTypes(t, `'a\'b'`, []TokenType{StringLiteral})
	if string(tokens[0].Text) != `'a\'b'` {
		t.Errorf("backslash escape mishandled: %q", tokens[0].Text)
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	tokens := expectTypes(t, "'abc", []TokenType{ErrorSingleQuoteIsNotClosed})
	if string(tokens[0].Text) != "'abc" {
		t.Errorf("error span must cover the rest of the input: %q", tokens[0].Text)
	}

	// The backslash escapes the would-be closer, leaving the literal
	// unterminated.
	tokens = expectTypes(t, `'a\'`, []TokenType{ErrorSingleQuoteIsNotClosed})
	if string(tokens[0].Text) != `'a\'` {
		t.Errorf("expected whole input, got %q", tokens[0].Text)
	}

	// Trailing backslash with nothing to escape.
	expectTypes(t, `'a\`, []TokenType{ErrorSingleQuoteIsNotClosed})
}

func TestNextToken_QuotedIdentifiers(t *testing.T) {
	tokens := expectTypes(t, `"col name"`, []TokenType{QuotedIdentifier})
	if string(tokens[0].Text) != `"col name"` {
		t.Errorf("unexpected span %q", tokens[0].Text)
	}

	expectTypes(t, "`col`", []TokenType{QuotedIdentifier})
	expectTypes(t, `"a""b"`, []TokenType{QuotedIdentifier})

	expectTypes(t, `"abc`, []TokenType{ErrorDoubleQuoteIsNotClosed})
	expectTypes(t, "`abc", []TokenType{ErrorBackQuoteIsNotClosed})
}

func TestNextToken_Punctuation(t *testing.T) {
	expectTypes(t, "()[],;+%?:*", []TokenType{
		OpeningRoundBracket, ClosingRoundBracket,
		OpeningSquareBracket, ClosingSquareBracket,
		Comma, Semicolon, Plus, Modulo, QuestionMark, Colon, Asterisk,
	})
}

func TestNextToken_MinusFamily(t *testing.T) {
	expectTypes(t, "-", []TokenType{Minus})
	expectTypes(t, "a-b", []TokenType{BareWord, Minus, BareWord})
	expectTypes(t, "->", []TokenType{Arrow})

	tokens := expectTypes(t, "-- note\nx", []TokenType{Comment, Whitespace, BareWord})
	if string(tokens[0].Text) != "-- note" {
		t.Errorf("line comment must stop before the newline: %q", tokens[0].Text)
	}

	// Comment runs to buffer end when there is no newline.
	expectTypes(t, "--", []TokenType{Comment})
}

func TestNextToken_SlashFamily(t *testing.T) {
	expectTypes(t, "/", []TokenType{Division})
	expectTypes(t, "a/b", []TokenType{BareWord, Division, BareWord})
	expectTypes(t, "// note", []TokenType{Comment})

	tokens := expectTypes(t, "/* note */x", []TokenType{Comment, BareWord})
	if string(tokens[0].Text) != "/* note */" {
		t.Errorf("unexpected block comment span %q", tokens[0].Text)
	}

	// The first closer terminates the comment; nesting is not
	// supported.
	tokens = expectTypes(t, "/* a /* b */ c", []TokenType{
		Comment, Whitespace, BareWord,
	})
	if string(tokens[0].Text) != "/* a /* b */" {
		t.Errorf("nested opener must not extend the comment: %q", tokens[0].Text)
	}
}

func TestNextToken_UnterminatedBlockComment(t *testing.T) {
	tokens := expectTypes(t, "/* abc", []TokenType{ErrorMultilineCommentIsNotClosed})
	if string(tokens[0].Text) != "/* abc" {
		t.Errorf("error span must cover the whole input: %q", tokens[0].Text)
	}

	// A lone trailing '*' cannot start a closer.
	expectTypes(t, "/* abc *", []TokenType{ErrorMultilineCommentIsNotClosed})
}

func TestNextToken_ComparisonFamily(t *testing.T) {
	expectTypes(t, "=", []TokenType{Equals})
	expectTypes(t, "==", []TokenType{Equals})
	expectTypes(t, "!=", []TokenType{NotEquals})
	expectTypes(t, "!", []TokenType{ErrorSingleExclamationMark})
	expectTypes(t, "<", []TokenType{Less})
	expectTypes(t, "<=", []TokenType{LessOrEquals})
	expectTypes(t, ">", []TokenType{Greater})
	expectTypes(t, ">=", []TokenType{GreaterOrEquals})

	// <> is one NotEquals, not Less then Greater.
	expectTypes(t, "<>", []TokenType{NotEquals})

	tokens := expectTypes(t, "a==b", []TokenType{BareWord, Equals, BareWord})
	if string(tokens[1].Text) != "==" {
		t.Errorf("== span expected, got %q", tokens[1].Text)
	}
}

func TestNextToken_PipeFamily(t *testing.T) {
	expectTypes(t, "||", []TokenType{Concatenation})
	expectTypes(t, "|", []TokenType{ErrorSinglePipeMark})
	expectTypes(t, "a||b", []TokenType{BareWord, Concatenation, BareWord})
}

func TestNextToken_UnrecognizedByte(t *testing.T) {
	tokens := expectTypes(t, "#", []TokenType{Error})
	if string(tokens[0].Text) != "#" {
		t.Errorf("expected single-byte span, got %q", tokens[0].Text)
	}

	// High-bit bytes outside quoted spans are unrecognized leading
	// bytes; inside quoted spans they pass through as content.
	expectTypes(t, "\xc3", []TokenType{Error})
	expectTypes(t, "'\xc3\xa9'", []TokenType{StringLiteral})
}

func TestNextToken_Losslessness(t *testing.T) {
	inputs := []string{
		"SELECT * FROM t WHERE a.b >= 1.5e10 AND s = 'it''s' -- done",
		"/* block */ x != y || z",
		"'unclosed",
		"0xFF 0b101 .5e-3",
		"<>=!|--\n`q`\"w\"",
		"   ",
		"",
	}

	for _, input := range inputs {
		tokens := scanAll(t, input)
		var rebuilt bytes.Buffer
		for _, tok := range tokens {
			rebuilt.Write(tok.Text)
		}
		if rebuilt.String() != input {
			t.Errorf("tokens do not reconstruct input:\n  in:  %q\n  out: %q", input, rebuilt.String())
		}
	}
}

func TestNextToken_SpansAreViews(t *testing.T) {
	src := []byte("abc 'def'")
	tokens := Tokenize(src)

	for _, tok := range tokens {
		if tok.Pos < 0 || tok.End() > len(src) {
			t.Fatalf("span [%d,%d) outside buffer of length %d", tok.Pos, tok.End(), len(src))
		}
		if !bytes.Equal(tok.Text, src[tok.Pos:tok.End()]) {
			t.Errorf("Text does not match the buffer at [%d,%d)", tok.Pos, tok.End())
		}
	}

	// Mutating the buffer must show through the spans (they are views,
	// not copies).
	src[0] = 'z'
	if tokens[0].Text[0] != 'z' {
		t.Error("token text was copied instead of borrowed")
	}
}

func TestTokenType_Predicates(t *testing.T) {
	if !ErrorSingleQuoteIsNotClosed.IsError() || !Error.IsError() {
		t.Error("error kinds must report IsError")
	}
	if BareWord.IsError() || EndOfStream.IsError() {
		t.Error("non-error kinds must not report IsError")
	}

	ws := Token{Type: Whitespace}
	if ws.IsSignificant() {
		t.Error("whitespace is not significant")
	}
	comment := Token{Type: Comment}
	if comment.IsSignificant() {
		t.Error("comments are not significant")
	}
	eos := Token{Type: EndOfStream}
	if !eos.IsSignificant() {
		t.Error("EndOfStream is significant")
	}
}
