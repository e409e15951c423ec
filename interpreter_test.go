// interpreter_test.go
package lys

import (
	"bytes"
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

// evalEnv returns a fresh env seeded with the builtins, with print output
// captured in the returned buffer.
func evalEnv(t *testing.T) (*Env, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	env := NewEnv(nil)
	for name, v := range Builtins(&out) {
		env.Define(name, v)
	}
	return env, &out
}

func mustEval(t *testing.T, env *Env, src string) Value {
	t.Helper()
	forms := mustRead(t, src)
	var last Value = Nil
	for _, f := range forms {
		v, err := Eval(f, env)
		if err != nil {
			t.Fatalf("Eval error: %v\nsource:\n%s", err, src)
		}
		last = v
	}
	return last
}

func wantEval(t *testing.T, env *Env, src, want string) {
	t.Helper()
	if got := FormatValue(mustEval(t, env, src)); got != want {
		t.Fatalf("eval %s: want %s, got %s", src, want, got)
	}
}

// --- tests -----------------------------------------------------------------

func Test_Eval_Literals_SelfEvaluate(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, "42", "42")
	wantEval(t, env, `"hi"`, `"hi"`)
	wantEval(t, env, "true", "true")
	wantEval(t, env, "()", "()")
}

func Test_Eval_Arithmetic(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, "(+ 1 2 3)", "6")
	wantEval(t, env, "(- 10 3 2)", "5")
	wantEval(t, env, "(- 4)", "-4")
	wantEval(t, env, "(* 2 3 4)", "24")
	wantEval(t, env, "(/ 7 2)", "3.5")
	wantEval(t, env, "(+ 1 0.5)", "1.5")
}

func Test_Eval_Comparisons(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, "(< 1 2 3)", "true")
	wantEval(t, env, "(< 1 3 2)", "false")
	wantEval(t, env, "(= 2 2 2)", "true")
	wantEval(t, env, "(= 2 2.0)", "true")
	wantEval(t, env, "(= '(1 2) (list 1 2))", "true")
}

func Test_Eval_Define_And_Lookup(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, "(define x 1)", "1")
	wantEval(t, env, "x", "1")
	wantEval(t, env, "(+ x 10)", "11")
}

func Test_Eval_Set_Requires_Existing_Binding(t *testing.T) {
	env, _ := evalEnv(t)
	mustEval(t, env, "(define x 1)")
	wantEval(t, env, "(set! x 5)", "5")
	wantEval(t, env, "x", "5")

	_, err := Eval(mustRead(t, "(set! nope 1)")[0], env)
	if err == nil || !strings.Contains(err.Error(), "undefined variable") {
		t.Fatalf("want undefined variable error, got %v", err)
	}
}

func Test_Eval_If(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, "(if true 1 2)", "1")
	wantEval(t, env, "(if false 1 2)", "2")
	wantEval(t, env, "(if nil 1)", "nil")
	wantEval(t, env, "(if 0 1 2)", "1") // only nil and false are falsy
}

func Test_Eval_Lambda_Closure(t *testing.T) {
	env, _ := evalEnv(t)
	mustEval(t, env, `(define make-adder (lambda (n) (lambda (m) (+ n m))))`)
	mustEval(t, env, "(define add3 (make-adder 3))")
	wantEval(t, env, "(add3 4)", "7")
	// The closed-over frame is independent per call.
	mustEval(t, env, "(define add10 (make-adder 10))")
	wantEval(t, env, "(add3 1)", "4")
	wantEval(t, env, "(add10 1)", "11")
}

func Test_Eval_Lambda_Arity(t *testing.T) {
	env, _ := evalEnv(t)
	mustEval(t, env, "(define f (lambda (a b) a))")
	_, err := Eval(mustRead(t, "(f 1)")[0], env)
	if err == nil || !strings.Contains(err.Error(), "takes 2 argument") {
		t.Fatalf("want arity error, got %v", err)
	}
}

func Test_Eval_Quote(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, "'(+ 1 2)", "(+ 1 2)")
	wantEval(t, env, "'x", "x")
}

func Test_Eval_Quasiquote(t *testing.T) {
	env, _ := evalEnv(t)
	mustEval(t, env, "(define x 2)")
	wantEval(t, env, "`(1 ,x 3)", "(1 2 3)")
	wantEval(t, env, "`(1 ,@(list 2 3) 4)", "(1 2 3 4)")
	// Nested quasiquote shields inner unquotes.
	wantEval(t, env, "``(a ,x)", "`(a ,x)")
}

func Test_Eval_Unquote_Outside_Quasiquote_Faults(t *testing.T) {
	env, _ := evalEnv(t)
	_, err := Eval(mustRead(t, ",x")[0], env)
	if err == nil || !strings.Contains(err.Error(), "outside quasiquote") {
		t.Fatalf("want unquote fault, got %v", err)
	}
}

func Test_Eval_Begin_Sequences(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, "(begin (define a 1) (define b 2) (+ a b))", "3")
}

func Test_Eval_Begin_Partial_Effects_Persist(t *testing.T) {
	env, _ := evalEnv(t)
	_, err := Eval(mustRead(t, `(begin (define y 2) (error "boom"))`)[0], env)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("want boom fault, got %v", err)
	}
	wantEval(t, env, "y", "2")
}

func Test_Eval_List_Builtins(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, "(list 1 2 3)", "(1 2 3)")
	wantEval(t, env, "(cons 0 (list 1 2))", "(0 1 2)")
	wantEval(t, env, "(first (list 1 2))", "1")
	wantEval(t, env, "(rest (list 1 2))", "(2)")
	wantEval(t, env, "(len (list 1 2 3))", "3")
	wantEval(t, env, `(len "abc")`, "3")
	wantEval(t, env, "(first ())", "nil")
	wantEval(t, env, "(rest ())", "()")
}

func Test_Eval_Print_Writes_Program_Output(t *testing.T) {
	env, out := evalEnv(t)
	mustEval(t, env, `(print "x is" 42)`)
	if got := out.String(); got != "x is 42\n" {
		t.Fatalf("want %q, got %q", "x is 42\n", got)
	}
}

func Test_Eval_Str_Concats_Display_Text(t *testing.T) {
	env, _ := evalEnv(t)
	wantEval(t, env, `(str "n=" 42)`, `"n=42"`)
}

func Test_Eval_Calling_NonFunction_Faults(t *testing.T) {
	env, _ := evalEnv(t)
	_, err := Eval(mustRead(t, "(1 2)")[0], env)
	if err == nil || !strings.Contains(err.Error(), "not a function") {
		t.Fatalf("want not-a-function fault, got %v", err)
	}
}

func Test_Env_Shadowing(t *testing.T) {
	parent := NewEnv(nil)
	parent.Define("x", Int(1))
	child := NewEnv(parent)
	child.Define("x", Int(2))

	if v, _ := child.Get("x"); v.Data.(int64) != 2 {
		t.Fatalf("child should see its own x")
	}
	if v, _ := parent.Get("x"); v.Data.(int64) != 1 {
		t.Fatalf("parent x must be untouched")
	}
	if err := child.Set("x", Int(3)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := parent.Get("x"); v.Data.(int64) != 1 {
		t.Fatalf("Set must update the nearest frame only")
	}
}
