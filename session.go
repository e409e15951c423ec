// session.go: persistent interactive session state
//
// A Session owns the three things that outlive a single turn of the
// console:
//
//   - the namespace: one root Env, created at session start, mutated in
//     place by every successful execution and never replaced;
//   - the source label attached to compiles and diagnostics;
//   - the pending buffer: lines accumulated since the last terminal
//     outcome. It is non-empty only while a multi-line form is open.
//
// Execute runs a compiled unit's forms sequentially against the
// namespace. A fault stops the unit but bindings already made before the
// fault stay committed; the namespace is never rolled back or rebuilt.
package lys

import "strings"

// DefaultLabel is the source label for console input.
const DefaultLabel = "<console>"

// Session holds the persistent state of one interactive session.
type Session struct {
	Label string

	env     *Env
	pending strings.Builder
}

// NewSession creates a session whose namespace is pre-populated with the
// seed bindings (builtins, helper macros, host hooks). seed may be nil.
func NewSession(seed map[string]Value) *Session {
	s := &Session{Label: DefaultLabel, env: NewEnv(nil)}
	for name, v := range seed {
		s.env.Define(name, v)
	}
	return s
}

// Env returns the session's namespace. Callers share it with the session;
// it is mutated in place, never replaced.
func (s *Session) Env() *Env { return s.env }

// AppendLine adds one input line (with its terminator) to the pending
// buffer. Pure append; never fails.
func (s *Session) AppendLine(line string) {
	s.pending.WriteString(line)
	s.pending.WriteByte('\n')
}

// Pending returns the buffered input accumulated so far.
func (s *Session) Pending() string { return s.pending.String() }

// HasPending reports whether a multi-line form is currently open.
func (s *Session) HasPending() bool { return s.pending.Len() > 0 }

// ClearBuffer resets the pending buffer. Called after every terminal
// outcome (success or hard error).
func (s *Session) ClearBuffer() { s.pending.Reset() }

// Execute runs a compiled unit in the namespace and returns the value of
// its last form. On a fault the error is returned and already-committed
// bindings stay in place.
func (s *Session) Execute(unit *Unit) (Value, error) {
	var last Value = Nil
	for _, form := range unit.Forms {
		v, err := Eval(form, s.env)
		if err != nil {
			return Nil, err
		}
		last = v
	}
	return last, nil
}
