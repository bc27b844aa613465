package lexer

// Tokenize scans src to completion and returns every token before
// EndOfStream. Concatenating the Text fields of the result reproduces
// src exactly.
func Tokenize(src []byte) []Token {
	l := New(src)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EndOfStream {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Stream is a buffered, strictly forward reader over a Lexer. It lets a
// parser peek without re-scanning and skip whitespace and comments
// without losing them. Like the Lexer it wraps, a Stream is not safe
// for concurrent use.
type Stream struct {
	lex *Lexer
	buf []Token
}

// NewStream returns a Stream over src.
func NewStream(src []byte) *Stream {
	return &Stream{lex: New(src)}
}

// Next returns the next token, including whitespace and comments.
// After the end of input it keeps returning EndOfStream.
func (s *Stream) Next() Token {
	if len(s.buf) > 0 {
		tok := s.buf[0]
		s.buf = s.buf[1:]
		return tok
	}
	return s.lex.NextToken()
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() Token {
	if len(s.buf) == 0 {
		s.buf = append(s.buf, s.lex.NextToken())
	}
	return s.buf[0]
}

// NextSignificant returns the next token that is neither whitespace nor
// a comment. EndOfStream is significant.
func (s *Stream) NextSignificant() Token {
	for {
		tok := s.Next()
		if tok.IsSignificant() {
			return tok
		}
	}
}

// PeekSignificant returns the next significant token without consuming
// it. Insignificant tokens before it are consumed.
func (s *Stream) PeekSignificant() Token {
	for {
		tok := s.Peek()
		if tok.IsSignificant() {
			return tok
		}
		s.Next()
	}
}
