// parser.go: the Lys reader
//
// Turns a token stream into a sequence of forms (Values). The reader is
// where the incomplete/malformed split the console depends on is decided:
//
//   - Running out of tokens inside an open form ("(", a dangling reader
//     tag, or an unterminated string caught by the lexer) is a valid
//     prefix. In interactive mode it surfaces as *Error{Kind:
//     DiagIncomplete}; in batch mode the same spot is a hard DiagParse.
//   - A ")" with no opener can never be fixed by appending text and is a
//     hard DiagParse in both modes.
//
// Reader tags expand at read time:
//
//	'x   → (quote x)
//	`x   → (quasiquote x)
//	,x   → (unquote x)
//	,@x  → (unquote-splicing x)
//	_# x → x is read and dropped
//
// Other '#'-suffixed tags are reserved and rejected.
//
// Dependencies: lexer.go, errors.go, form.go.
package lys

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// ReadForms reads a complete source string into its top-level forms.
// Any truncation is a hard error.
func ReadForms(src string) ([]Value, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	r := &reader{toks: toks}
	return r.program()
}

// ReadFormsInteractive reads in REPL-friendly mode. Unterminated
// constructs at EOF produce *Error{Kind: DiagIncomplete}.
func ReadFormsInteractive(src string) ([]Value, error) {
	lex := NewLexerInteractive(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	r := &reader{toks: toks, interactive: true}
	return r.program()
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                             PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

type reader struct {
	toks        []Token
	i           int
	interactive bool
}

func (r *reader) atEnd() bool { return r.peek().Type == EOF }

func (r *reader) peek() Token {
	if r.i >= len(r.toks) {
		return r.toks[len(r.toks)-1]
	}
	return r.toks[r.i]
}

func (r *reader) next() Token {
	t := r.peek()
	if !r.atEnd() {
		r.i++
	}
	return t
}

// truncated builds the diagnostic for running out of tokens mid-form:
// soft in interactive mode, hard otherwise.
func (r *reader) truncated(msg string) error {
	kind := DiagParse
	if r.interactive {
		kind = DiagIncomplete
	}
	t := r.peek() // EOF token; positioned just past the last real token
	return &Error{Kind: kind, Msg: msg, Line: t.Line, Col: t.Col}
}

func (r *reader) program() ([]Value, error) {
	var forms []Value
	for !r.atEnd() {
		form, keep, err := r.form()
		if err != nil {
			return nil, err
		}
		if keep {
			forms = append(forms, form)
		}
	}
	return forms, nil
}

// form reads one form. keep is false for forms swallowed by the discard
// tag.
func (r *reader) form() (form Value, keep bool, err error) {
	t := r.next()
	switch t.Type {
	case LPAREN:
		v, err := r.list(t)
		return v, true, err
	case RPAREN:
		return Nil, false, &Error{Kind: DiagParse, Msg: "unopened ')'", Line: t.Line, Col: t.Col}
	case TAG:
		return r.tagged(t)
	case STRING:
		return Str(t.Literal.(string)), true, nil
	case INTEGER:
		return Int(t.Literal.(int64)), true, nil
	case NUMBER:
		return Num(t.Literal.(float64)), true, nil
	case BOOLEAN:
		return Bool(t.Literal.(bool)), true, nil
	case NIL:
		return Nil, true, nil
	case SYMBOL:
		return Sym(t.Lexeme), true, nil
	case EOF:
		return Nil, false, r.truncated("unexpected end of input")
	default:
		return Nil, false, &Error{Kind: DiagParse, Msg: "can't read this", Line: t.Line, Col: t.Col}
	}
}

func (r *reader) list(open Token) (Value, error) {
	var items []Value
	for {
		if r.atEnd() {
			return Nil, r.truncated("unclosed '('")
		}
		if r.peek().Type == RPAREN {
			r.next()
			return List(items...), nil
		}
		item, keep, err := r.form()
		if err != nil {
			return Nil, err
		}
		if keep {
			items = append(items, item)
		}
	}
}

// tagged reads a reader-macro tag and its argument form.
func (r *reader) tagged(t Token) (Value, bool, error) {
	var wrap string
	switch t.Lexeme {
	case "'":
		wrap = "quote"
	case "`":
		wrap = "quasiquote"
	case ",":
		wrap = "unquote"
	case ",@":
		wrap = "unquote-splicing"
	case "_#":
		wrap = ""
	default:
		return Nil, false, &Error{Kind: DiagParse, Msg: "unknown reader tag " + t.Lexeme, Line: t.Line, Col: t.Col}
	}

	if r.atEnd() {
		return Nil, false, r.truncated("reader tag " + t.Lexeme + " missing argument")
	}
	if r.peek().Type == RPAREN {
		// The argument can never appear; ')' closes the enclosing form.
		g := r.peek()
		return Nil, false, &Error{Kind: DiagParse, Msg: "reader tag " + t.Lexeme + " missing argument", Line: g.Line, Col: g.Col}
	}

	// The tag's argument may itself be discarded (e.g. '_# _# x); keep
	// reading until a form survives.
	for {
		arg, keep, err := r.form()
		if err != nil {
			return Nil, false, err
		}
		if keep {
			if wrap == "" {
				return Nil, false, nil // discard
			}
			return List(Sym(wrap), arg), true, nil
		}
		if r.atEnd() {
			return Nil, false, r.truncated("reader tag " + t.Lexeme + " missing argument")
		}
	}
}
