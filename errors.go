// errors.go: diagnostic kinds and caret-snippet rendering
//
// Every stage of the pipeline (lexer, reader, evaluator) reports failures
// through one type, *Error, tagged with a DiagKind. The kind that matters
// most is DiagIncomplete: it marks buffered interactive input that is a
// valid prefix of a larger form and could still become valid with more
// lines. Everything else is terminal for the current buffer.
//
// `WrapErrorWithName` upgrades a positioned lex/read diagnostic into a
// multi-line snippet with a caret under the offending column:
//
//	READ ERROR in <console> at 2:14: unopened ')'
//
//	   1 | (define x
//	   2 |   (first xs))
//	       |             ^
//
// Runtime faults carry no source position (forms do not retain spans) and
// render as a single line.
package lys

import (
	"errors"
	"fmt"
	"strings"
)

// DiagKind classifies a diagnostic.
type DiagKind int

const (
	DiagLex        DiagKind = iota // bad token; can never become valid
	DiagParse                      // structurally invalid; can never become valid
	DiagIncomplete                 // valid prefix; more input may complete it
	DiagRuntime                    // fault while executing a compiled unit
)

// Error is the single diagnostic type for the whole pipeline.
// Line is 1-based, Col is 0-based (rendered 1-based). Runtime errors
// leave both at zero.
type Error struct {
	Kind DiagKind
	Msg  string
	Line int
	Col  int
}

func (e *Error) Error() string {
	switch e.Kind {
	case DiagLex:
		return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
	case DiagParse:
		return fmt.Sprintf("READ ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
	case DiagIncomplete:
		return fmt.Sprintf("incomplete input at %d:%d: %s", e.Line, e.Col+1, e.Msg)
	default:
		return fmt.Sprintf("RUNTIME ERROR: %s", e.Msg)
	}
}

// IsIncomplete reports whether err is a DiagIncomplete diagnostic, i.e.
// the input could still be completed by appending more lines.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == DiagIncomplete
}

// RuntimeErrorf builds a positionless runtime diagnostic.
func RuntimeErrorf(format string, args ...any) *Error {
	return &Error{Kind: DiagRuntime, Msg: fmt.Sprintf(format, args...)}
}

// WrapErrorWithName returns an error whose message is a caret-annotated
// snippet of src, labeled with the source name. Diagnostics without a
// position (runtime faults) and foreign errors pass through unchanged.
func WrapErrorWithName(err error, srcName, src string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	var header string
	switch e.Kind {
	case DiagLex:
		header = "LEXICAL ERROR"
	case DiagParse:
		header = "READ ERROR"
	case DiagIncomplete:
		header = "INCOMPLETE INPUT"
	default:
		return err
	}
	return fmt.Errorf("%s", snippet(src, header, srcName, e.Line, e.Col+1, e.Msg))
}

// snippet builds the header plus up to one line of context on each side,
// with a caret under the 1-based column. Coordinates are clamped so a
// stale or out-of-range position cannot break rendering.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
