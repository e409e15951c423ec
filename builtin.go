// builtin.go: the builtin seed bindings
//
// Builtins are not baked into the evaluator: they are handed to the
// session as seed bindings at start, so a host can trim, extend, or
// replace the set. `print` writes to the writer the host supplies, which
// keeps program output separate from the console's diagnostic channel.
package lys

import (
	"fmt"
	"io"
	"strings"
)

// Builtins returns the standard seed-binding set. out receives the
// output of `print`.
func Builtins(out io.Writer) map[string]Value {
	b := map[string]Value{}
	def := func(name string, fn func(args []Value) (Value, error)) {
		b[name] = Value{Tag: VTNative, Data: &Native{Name: name, Fn: fn}}
	}

	def("+", func(args []Value) (Value, error) { return foldArith("+", args) })
	def("-", func(args []Value) (Value, error) { return foldArith("-", args) })
	def("*", func(args []Value) (Value, error) { return foldArith("*", args) })
	def("/", func(args []Value) (Value, error) { return foldArith("/", args) })

	def("<", func(args []Value) (Value, error) { return compareChain("<", args) })
	def(">", func(args []Value) (Value, error) { return compareChain(">", args) })
	def("<=", func(args []Value) (Value, error) { return compareChain("<=", args) })
	def(">=", func(args []Value) (Value, error) { return compareChain(">=", args) })

	def("=", func(args []Value) (Value, error) {
		if len(args) < 2 {
			return Nil, RuntimeErrorf("= takes at least 2 arguments, got %d", len(args))
		}
		for _, a := range args[1:] {
			if !Equal(args[0], a) {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	})

	def("not", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Nil, RuntimeErrorf("not takes 1 argument, got %d", len(args))
		}
		return Bool(!args[0].Truthy()), nil
	})

	def("list", func(args []Value) (Value, error) {
		return List(args...), nil
	})

	def("cons", func(args []Value) (Value, error) {
		if len(args) != 2 || args[1].Tag != VTList {
			return Nil, RuntimeErrorf("cons takes a value and a list")
		}
		rest := args[1].Items()
		out := make([]Value, 0, len(rest)+1)
		out = append(out, args[0])
		out = append(out, rest...)
		return List(out...), nil
	})

	def("first", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != VTList {
			return Nil, RuntimeErrorf("first takes a list")
		}
		items := args[0].Items()
		if len(items) == 0 {
			return Nil, nil
		}
		return items[0], nil
	})

	def("rest", func(args []Value) (Value, error) {
		if len(args) != 1 || args[0].Tag != VTList {
			return Nil, RuntimeErrorf("rest takes a list")
		}
		items := args[0].Items()
		if len(items) == 0 {
			return List(), nil
		}
		return List(items[1:]...), nil
	})

	def("len", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Nil, RuntimeErrorf("len takes 1 argument, got %d", len(args))
		}
		switch args[0].Tag {
		case VTList:
			return Int(int64(len(args[0].Items()))), nil
		case VTStr:
			return Int(int64(len(args[0].Data.(string)))), nil
		default:
			return Nil, RuntimeErrorf("len takes a list or string, got %s", FormatValue(args[0]))
		}
	})

	def("str", func(args []Value) (Value, error) {
		var sb strings.Builder
		for _, a := range args {
			sb.WriteString(displayText(a))
		}
		return Str(sb.String()), nil
	})

	def("print", func(args []Value) (Value, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, displayText(a))
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return Nil, nil
	})

	def("error", func(args []Value) (Value, error) {
		if len(args) == 1 && args[0].Tag == VTStr {
			return Nil, RuntimeErrorf("%s", args[0].Data.(string))
		}
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, displayText(a))
		}
		return Nil, RuntimeErrorf("%s", strings.Join(parts, " "))
	})

	return b
}

// displayText is FormatValue minus string quoting; what print and str
// show for human consumption.
func displayText(v Value) string {
	if v.Tag == VTStr {
		return v.Data.(string)
	}
	return FormatValue(v)
}

func foldArith(op string, args []Value) (Value, error) {
	if len(args) == 0 {
		return Nil, RuntimeErrorf("%s takes at least 1 argument", op)
	}
	// Stay in int64 as long as every operand is an integer.
	allInt := true
	for _, a := range args {
		switch a.Tag {
		case VTInt:
		case VTNum:
			allInt = false
		default:
			return Nil, RuntimeErrorf("%s takes numbers, got %s", op, FormatValue(a))
		}
	}

	if op == "-" && len(args) == 1 {
		if allInt {
			return Int(-args[0].Data.(int64)), nil
		}
		f, _ := asNum(args[0])
		return Num(-f), nil
	}
	if op == "/" {
		allInt = false // division is float division
	}

	if allInt {
		acc := args[0].Data.(int64)
		for _, a := range args[1:] {
			n := a.Data.(int64)
			switch op {
			case "+":
				acc += n
			case "-":
				acc -= n
			case "*":
				acc *= n
			}
		}
		return Int(acc), nil
	}

	acc, _ := asNum(args[0])
	for _, a := range args[1:] {
		n, _ := asNum(a)
		switch op {
		case "+":
			acc += n
		case "-":
			acc -= n
		case "*":
			acc *= n
		case "/":
			if n == 0 {
				return Nil, RuntimeErrorf("division by zero")
			}
			acc /= n
		}
	}
	return Num(acc), nil
}

func compareChain(op string, args []Value) (Value, error) {
	if len(args) < 2 {
		return Nil, RuntimeErrorf("%s takes at least 2 arguments, got %d", op, len(args))
	}
	for i := 0; i+1 < len(args); i++ {
		a, aok := asNum(args[i])
		b, bok := asNum(args[i+1])
		if !aok || !bok {
			return Nil, RuntimeErrorf("%s takes numbers", op)
		}
		var hold bool
		switch op {
		case "<":
			hold = a < b
		case ">":
			hold = a > b
		case "<=":
			hold = a <= b
		case ">=":
			hold = a >= b
		}
		if !hold {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}
