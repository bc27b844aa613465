// Package lexer implements the tokenizer for sqltok's SQL dialect.
//
// The lexer converts raw source bytes into a stream of typed,
// position-tagged tokens — the first stage of a query-parsing pipeline.
// It makes a single forward pass with at most two bytes of lookahead
// and never backtracks.
//
// # Usage
//
//	l := lexer.New([]byte("SELECT x FROM t WHERE id = 1"))
//	for {
//	    tok := l.NextToken()
//	    if tok.Type == lexer.EndOfStream {
//	        break
//	    }
//	    fmt.Printf("%s %q\n", tok.Type, tok.Text)
//	}
//
// # Tokens are spans, not copies
//
// Token.Text is a subslice of the input buffer. The scanner never
// copies, decodes or normalizes: a string literal keeps its quotes and
// escape sequences, and concatenating the Text of every token emitted
// before EndOfStream reproduces the input byte for byte. Unescaping is
// the consumer's job.
//
// # Errors are tokens
//
// Malformed input never produces a Go error or a panic. An unterminated
// string, a bare '!' or an unclosed block comment each come back as a
// token whose type names the failure (ErrorSingleQuoteIsNotClosed,
// ErrorSingleExclamationMark, ...). The scanner keeps going from
// wherever the cursor landed; whether an error token aborts anything is
// the caller's decision. The diag package turns these tokens into
// user-facing diagnostics.
//
// # Consumption
//
// NextToken is the raw pull interface. Tokenize materializes a whole
// buffer, and Stream adds buffered peeking plus skipping of whitespace
// and comment tokens for parser-style consumers.
package lexer
