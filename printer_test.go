// printer_test.go
package lys

import "testing"

func Test_Printer_Values(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Num(3.5), "3.5"},
		{Num(2), "2.0"}, // floats stay distinguishable from ints
		{Str("a\"b\n"), `"a\"b\n"`},
		{Sym("foo"), "foo"},
		{List(), "()"},
		{List(Int(1), List(Sym("a")), Str("x")), `(1 (a) "x")`},
	}
	for _, c := range cases {
		if got := FormatValue(c.v); got != c.want {
			t.Fatalf("FormatValue(%+v): want %s, got %s", c.v, c.want, got)
		}
	}
}

func Test_Printer_Tag_Notation(t *testing.T) {
	cases := map[string]string{
		"'x":          "'x",
		"`(a ,b ,@c)": "`(a ,b ,@c)",
		"'(1 2)":      "'(1 2)",
	}
	for src, want := range cases {
		forms := mustRead(t, src)
		if got := FormatValue(forms[0]); got != want {
			t.Fatalf("%s: want %s, got %s", src, want, got)
		}
	}
}

func Test_Printer_Functions(t *testing.T) {
	env, _ := evalEnv(t)
	v := mustEval(t, env, "(lambda (a b) a)")
	if got := FormatValue(v); got != "#<lambda (a b)>" {
		t.Fatalf("lambda display: got %s", got)
	}
	plus, _ := env.Get("+")
	if got := FormatValue(plus); got != "#<builtin +>" {
		t.Fatalf("builtin display: got %s", got)
	}
}

func Test_Printer_RoundTrips_Through_Reader(t *testing.T) {
	srcs := []string{
		"(define f (lambda (a) (+ a 1)))",
		`("s" 1 2.5 true nil ())`,
		"`(a ,b ,@(c d))",
	}
	for _, src := range srcs {
		first := FormatForms(mustRead(t, src))
		again := FormatForms(mustRead(t, first))
		if first != again {
			t.Fatalf("not stable under re-read:\n%s\nvs\n%s", first, again)
		}
	}
}
