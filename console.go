// console.go: the interactive console loop
//
// Loop runs the read → classify → act cycle over a Session and a
// Compiler. It holds its console capability by composition (a LineReader
// it asks for one line at a time with the current prompt) rather than
// wrapping a concrete terminal, so every branch of a turn is testable
// with a scripted reader.
//
// Per turn:
//
//  1. read one line (end-of-input from the reader is forwarded to the
//     caller unchanged);
//  2. append it to the session's pending buffer;
//  3. compile the whole buffer;
//  4. branch:
//     incomplete → keep the buffer, switch to the continuation prompt;
//     malformed  → report the diagnostic, reset;
//     complete   → echo the compiled form on the diagnostic channel,
//     reset, execute against the namespace.
//
// A panic out of the compiler is not one of the three outcomes; it is
// caught here, its stack is written to the diagnostic channel, and the
// loop resets and continues. The session must survive collaborator bugs.
//
// Prompt state is tied 1:1 to the buffer: reset() clears the buffer and
// returns to the primary prompt in one step, and only an incomplete
// outcome leaves both alone.
package lys

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

// Default prompt pair.
const (
	PromptPrimary      = "#> "
	PromptContinuation = "#.. "
)

// LineReader supplies one line of input per call, displaying the given
// prompt. It reports end-of-input (or interrupt) through err; the loop
// forwards such errors to its caller unchanged.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Loop is the interactive console state machine.
type Loop struct {
	sess *Session
	comp Compiler
	in   LineReader

	diag io.Writer // diagnostics: errors, echoed compiled forms
	out  io.Writer // execution results

	promptMain string
	promptCont string
	continuing bool
}

// NewLoop wires a console loop. diag receives diagnostics and the echo
// trace; out receives the values of successful turns.
func NewLoop(sess *Session, comp Compiler, in LineReader, diag, out io.Writer) *Loop {
	return &Loop{
		sess:       sess,
		comp:       comp,
		in:         in,
		diag:       diag,
		out:        out,
		promptMain: PromptPrimary,
		promptCont: PromptContinuation,
	}
}

// SetPrompts overrides the prompt pair.
func (l *Loop) SetPrompts(primary, continuation string) {
	l.promptMain = primary
	l.promptCont = continuation
}

// Prompt returns the prompt for the next line: continuation while a
// multi-line form is open, primary otherwise.
func (l *Loop) Prompt() string {
	if l.continuing {
		return l.promptCont
	}
	return l.promptMain
}

// Continuing reports whether the loop is waiting for more lines of an
// open form.
func (l *Loop) Continuing() bool { return l.continuing }

// Reset abandons any pending input and returns to the primary prompt.
// Used by hosts on interrupt (Ctrl-C during a continuation).
func (l *Loop) Reset() { l.reset() }

// Run reads and processes lines until the reader reports an error
// (end-of-input, interrupt), which is returned unchanged.
func (l *Loop) Run() error {
	for {
		line, err := l.in.ReadLine(l.Prompt())
		if err != nil {
			return err
		}
		// A blank line at the primary prompt is not a turn. Inside an
		// open form it is meaningful whitespace and goes through.
		if !l.continuing && strings.TrimSpace(line) == "" {
			continue
		}
		l.Turn(line)
	}
}

// Turn processes one line to completion: append, compile, classify, act.
func (l *Loop) Turn(line string) {
	l.sess.AppendLine(line)

	outcome, ok := l.safeCompile()
	if !ok {
		return // internal compiler fault, already reported and reset
	}

	switch outcome.Kind {
	case OutcomeIncomplete:
		// The only branch that keeps the buffer alive.
		l.continuing = true

	case OutcomeMalformed:
		fmt.Fprintln(l.diag, outcome.Detail.Error())
		l.reset()

	case OutcomeComplete:
		l.echo(outcome.Unit)
		l.reset()
		v, err := l.sess.Execute(outcome.Unit)
		if err != nil {
			fmt.Fprintln(l.diag, err.Error())
			return
		}
		if v.Tag != VTNil {
			fmt.Fprintln(l.out, FormatValue(v))
		}
	}
}

// reset clears the pending buffer and the continuation prompt together;
// the two are never toggled independently.
func (l *Loop) reset() {
	l.sess.ClearBuffer()
	l.continuing = false
}

// echo writes the compiled form of a successful turn to the diagnostic
// channel, continuation lines prefixed to stay visually attached.
func (l *Loop) echo(u *Unit) {
	fmt.Fprintf(l.diag, ">>> %s\n", strings.ReplaceAll(u.Text, "\n", "\n... "))
}

// safeCompile invokes the compiler with a recovery boundary. A panic is
// reported with its full stack, the turn is abandoned, and the loop
// returns to the primary prompt.
func (l *Loop) safeCompile() (outcome Outcome, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(l.diag, "internal compiler fault: %v\n%s", r, debug.Stack())
			l.reset()
			ok = false
		}
	}()
	return l.comp.Compile(l.sess.Pending(), l.sess.Label), true
}
