// session_test.go
package lys

import (
	"bytes"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewSession(Builtins(&out)), &out
}

func compileUnit(t *testing.T, src string) *Unit {
	t.Helper()
	o := ReadCompiler{}.Compile(src, "<test>")
	if o.Kind != OutcomeComplete {
		t.Fatalf("want complete outcome for %q, got kind=%v detail=%v", src, o.Kind, o.Detail)
	}
	return o.Unit
}

// --- tests -----------------------------------------------------------------

func Test_Session_Seed_Bindings_Visible(t *testing.T) {
	sess, _ := newTestSession(t)
	if _, err := sess.Env().Get("+"); err != nil {
		t.Fatalf("seed binding missing: %v", err)
	}
}

func Test_Session_AppendLine_Accumulates(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.AppendLine("(define x")
	sess.AppendLine("  1)")
	if got := sess.Pending(); got != "(define x\n  1)\n" {
		t.Fatalf("want buffered lines with terminators, got %q", got)
	}
	if !sess.HasPending() {
		t.Fatalf("HasPending should be true")
	}
	sess.ClearBuffer()
	if sess.HasPending() || sess.Pending() != "" {
		t.Fatalf("ClearBuffer must empty the buffer")
	}
}

func Test_Session_Namespace_Persists_Across_Units(t *testing.T) {
	sess, _ := newTestSession(t)
	if _, err := sess.Execute(compileUnit(t, "(define x 1)")); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	v, err := sess.Execute(compileUnit(t, "x"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if FormatValue(v) != "1" {
		t.Fatalf("want 1, got %s", FormatValue(v))
	}
}

func Test_Session_Namespace_Is_Mutated_Not_Replaced(t *testing.T) {
	sess, _ := newTestSession(t)
	before := sess.Env()
	if _, err := sess.Execute(compileUnit(t, "(define x 1)")); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if sess.Env() != before {
		t.Fatalf("namespace identity must be stable for the session lifetime")
	}
}

func Test_Session_Fault_Keeps_Committed_Bindings(t *testing.T) {
	sess, _ := newTestSession(t)
	mustExec := func(src string) {
		if _, err := sess.Execute(compileUnit(t, src)); err != nil {
			t.Fatalf("Execute %q: %v", src, err)
		}
	}
	mustExec("(define a 1)")

	// Two forms in one unit: the first commits, the second faults.
	_, err := sess.Execute(compileUnit(t, `(define y 2) (error "boom")`))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("want fault, got %v", err)
	}

	// Bindings from before the fault and from prior units both survive.
	for name, want := range map[string]string{"a": "1", "y": "2"} {
		v, err := sess.Env().Get(name)
		if err != nil {
			t.Fatalf("binding %s lost after fault: %v", name, err)
		}
		if FormatValue(v) != want {
			t.Fatalf("binding %s: want %s, got %s", name, want, FormatValue(v))
		}
	}
}

func Test_Session_Execute_Returns_Last_Form_Value(t *testing.T) {
	sess, _ := newTestSession(t)
	v, err := sess.Execute(compileUnit(t, "1 2 3"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if FormatValue(v) != "3" {
		t.Fatalf("want 3, got %s", FormatValue(v))
	}
}

func Test_ReadCompiler_Outcomes(t *testing.T) {
	c := ReadCompiler{}

	if o := c.Compile("(", "<test>"); o.Kind != OutcomeIncomplete {
		t.Fatalf("want incomplete, got %v", o.Kind)
	}
	o := c.Compile(")", "<test>")
	if o.Kind != OutcomeMalformed {
		t.Fatalf("want malformed, got %v", o.Kind)
	}
	if o.Detail == nil || !strings.Contains(o.Detail.Error(), "unopened ')'") {
		t.Fatalf("malformed detail should carry the diagnostic, got %v", o.Detail)
	}
	if !strings.Contains(o.Detail.Error(), "<test>") {
		t.Fatalf("diagnostic should carry the source label, got %v", o.Detail)
	}

	o = c.Compile("(+ 1 2)", "<test>")
	if o.Kind != OutcomeComplete || o.Unit == nil {
		t.Fatalf("want complete with unit, got %+v", o)
	}
	if o.Unit.Text != "(+ 1 2)" {
		t.Fatalf("unit text: want %q, got %q", "(+ 1 2)", o.Unit.Text)
	}
}

func Test_ReadCompiler_Deterministic_On_Growing_Buffer(t *testing.T) {
	c := ReadCompiler{}
	buf := "(define x\n"
	if o := c.Compile(buf, "<test>"); o.Kind != OutcomeIncomplete {
		t.Fatalf("prefix should be incomplete")
	}
	// Re-invoking on the unchanged prefix classifies identically.
	if o := c.Compile(buf, "<test>"); o.Kind != OutcomeIncomplete {
		t.Fatalf("re-invocation diverged on unchanged prefix")
	}
	buf += "  1)\n"
	o := c.Compile(buf, "<test>")
	if o.Kind != OutcomeComplete {
		t.Fatalf("grown buffer should complete, got %v (%v)", o.Kind, o.Detail)
	}
}
