// lexer.go: tokenizer for Lys source
//
// The token set is deliberately small:
//
//	LPAREN RPAREN      "(" and ")"
//	STRING             double-quoted, escapes \n \t \r \" \\, may span lines
//	INTEGER NUMBER     numeric literals
//	BOOLEAN NIL        true / false / nil
//	SYMBOL             any other atom
//	TAG                reader-macro tags: ' ` , ,@ and atoms ending in '#'
//
// Comments run from ';' to end of line and are skipped along with
// whitespace. The lexer tracks 1-based line and 0-based column for every
// token so diagnostics can point into multi-line buffers.
//
// Interactive mode changes exactly one behavior: a string still open at
// end of input is reported as *Error{Kind: DiagIncomplete} instead of
// DiagLex, because more lines could complete it. Everything else a REPL
// needs for incompleteness detection lives in the reader (parser.go),
// which sees unclosed parens as missing tokens.
package lys

import (
	"strconv"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota
	LPAREN
	RPAREN
	STRING
	INTEGER
	NUMBER
	BOOLEAN
	NIL
	SYMBOL
	TAG
)

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string // raw text slice
	Literal any    // parsed value for literals
	Line    int    // 1-based
	Col     int    // 0-based
}

// Lexer scans a Lys source string into tokens.
type Lexer struct {
	src         string
	start       int // start index of current token
	cur         int // current index
	line        int // 1-based
	col         int // 0-based column within line
	tokens      []Token
	interactive bool

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a lexer for batch input: every diagnostic is terminal.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// NewLexerInteractive creates a lexer for REPL input: unterminated
// strings at EOF surface as DiagIncomplete.
func NewLexerInteractive(src string) *Lexer {
	return &Lexer{src: src, line: 1, interactive: true}
}

// Scan tokenizes the whole source. The returned slice always ends with
// an EOF token on success.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit any) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) err(msg string) error {
	return &Error{Kind: DiagLex, Msg: msg, Line: l.line, Col: l.col}
}

func (l *Lexer) skipBlank() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == ';':
			for !l.isAtEnd() {
				if c, _ := l.peek(); c == '\n' {
					break
				}
				l.advance()
			}
		default:
			l.start = l.cur
			return
		}
	}
	l.start = l.cur
}

// isDelimiter reports bytes that terminate an atom.
func isDelimiter(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '(', ')', '"', ';':
		return true
	default:
		return false
	}
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipBlank()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	if l.isAtEnd() {
		return l.addToken(EOF, nil), nil
	}

	ch, _ := l.advance()
	switch ch {
	case '(':
		return l.addToken(LPAREN, nil), nil
	case ')':
		return l.addToken(RPAREN, nil), nil
	case '"':
		s, err := l.scanString()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(STRING, s), nil
	case '\'', '`':
		return l.addToken(TAG, nil), nil
	case ',':
		if c, ok := l.peek(); ok && c == '@' {
			l.advance()
		}
		return l.addToken(TAG, nil), nil
	default:
		return l.scanAtom()
	}
}

// scanString consumes a string body after the opening quote. Raw newlines
// are legal inside strings, which is what makes a string the second way
// (besides an open paren) for interactive input to span turns.
func (l *Lexer) scanString() (string, error) {
	var out strings.Builder
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			return out.String(), nil
		}
		if ch != '\\' {
			out.WriteByte(ch)
			continue
		}
		esc, ok := l.advance()
		if !ok {
			break // unterminated; falls through to the EOF diagnosis
		}
		switch esc {
		case '"':
			out.WriteByte('"')
		case '\\':
			out.WriteByte('\\')
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '\n':
			// escaped newline: line continuation inside a string
		default:
			return "", l.err("unknown escape sequence: \\" + string(esc))
		}
	}
	if l.interactive {
		return "", &Error{Kind: DiagIncomplete, Msg: "unterminated string", Line: l.line, Col: l.col}
	}
	return "", &Error{Kind: DiagLex, Msg: "unterminated string", Line: l.tokStartLine, Col: l.tokStartCol}
}

// scanAtom consumes a run of non-delimiter bytes and classifies it.
func (l *Lexer) scanAtom() (Token, error) {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		if isDelimiter(ch) {
			break
		}
		l.advance()
		// '#' closes an atom, so tags like _# self-delimit: "_#x" is
		// the tag "_#" followed by the atom "x".
		if ch == '#' {
			break
		}
	}
	lex := l.src[l.start:l.cur]

	// An atom ending in '#' is a reader tag (e.g. the discard tag "_#").
	if strings.HasSuffix(lex, "#") && len(lex) > 1 {
		return l.addToken(TAG, nil), nil
	}

	switch lex {
	case "true":
		return l.addToken(BOOLEAN, true), nil
	case "false":
		return l.addToken(BOOLEAN, false), nil
	case "nil":
		return l.addToken(NIL, nil), nil
	}
	if n, err := strconv.ParseInt(lex, 10, 64); err == nil {
		return l.addToken(INTEGER, n), nil
	}
	if f, err := strconv.ParseFloat(lex, 64); err == nil {
		return l.addToken(NUMBER, f), nil
	}
	return l.addToken(SYMBOL, nil), nil
}
