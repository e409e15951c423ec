// interpreter.go: environments and the Lys evaluator
//
// Env is a lexical frame with a parent link; the session's namespace is
// a single root Env that lives for the whole session and is only ever
// mutated, never replaced.
//
// Eval executes one form. Top-level sequencing (and the partial-effect
// guarantee the console relies on: a fault stops the unit but keeps the
// bindings already made) lives in session.go.
//
// Special forms: quote, if, define, set!, lambda, begin, quasiquote.
// Everything else is a call: evaluate the head, evaluate the arguments
// left to right, apply.
package lys

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward. Use Define to bind in the current frame, Set to update the
// nearest existing binding, and Get to retrieve.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Set updates the nearest existing binding of name to v. If no binding
// exists in any visible frame, Set returns an error (it does not
// implicitly define).
func (e *Env) Set(name string, v Value) error {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return nil
		}
	}
	return RuntimeErrorf("undefined variable: %s", name)
}

// Get retrieves the nearest visible binding for name or returns an error.
func (e *Env) Get(name string) (Value, error) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, nil
		}
	}
	return Nil, RuntimeErrorf("undefined variable: %s", name)
}

// Eval evaluates one form in env. Errors are *Error{Kind: DiagRuntime}.
func Eval(form Value, env *Env) (Value, error) {
	switch form.Tag {
	case VTSym:
		return env.Get(form.Data.(string))
	case VTList:
		items := form.Items()
		if len(items) == 0 {
			return form, nil // () evaluates to itself
		}
		if items[0].Tag == VTSym {
			if v, done, err := evalSpecial(items[0].Data.(string), items[1:], env); done {
				return v, err
			}
		}
		return evalCall(items, env)
	default:
		return form, nil // literals are self-evaluating
	}
}

// evalSpecial handles special forms. done is false when head is not a
// special form and the list should be evaluated as a call.
func evalSpecial(head string, args []Value, env *Env) (v Value, done bool, err error) {
	switch head {
	case "quote":
		if len(args) != 1 {
			return Nil, true, RuntimeErrorf("quote takes one argument, got %d", len(args))
		}
		return args[0], true, nil

	case "if":
		if len(args) < 2 || len(args) > 3 {
			return Nil, true, RuntimeErrorf("if takes a condition and one or two branches")
		}
		cond, err := Eval(args[0], env)
		if err != nil {
			return Nil, true, err
		}
		if cond.Truthy() {
			v, err := Eval(args[1], env)
			return v, true, err
		}
		if len(args) == 3 {
			v, err := Eval(args[2], env)
			return v, true, err
		}
		return Nil, true, nil

	case "define":
		if len(args) != 2 || args[0].Tag != VTSym {
			return Nil, true, RuntimeErrorf("define takes a symbol and a value")
		}
		val, err := Eval(args[1], env)
		if err != nil {
			return Nil, true, err
		}
		env.Define(args[0].Data.(string), val)
		return val, true, nil

	case "set!":
		if len(args) != 2 || args[0].Tag != VTSym {
			return Nil, true, RuntimeErrorf("set! takes a symbol and a value")
		}
		val, err := Eval(args[1], env)
		if err != nil {
			return Nil, true, err
		}
		if err := env.Set(args[0].Data.(string), val); err != nil {
			return Nil, true, err
		}
		return val, true, nil

	case "lambda":
		if len(args) < 2 || args[0].Tag != VTList {
			return Nil, true, RuntimeErrorf("lambda takes a parameter list and a body")
		}
		params := make([]string, 0, len(args[0].Items()))
		for _, p := range args[0].Items() {
			if p.Tag != VTSym {
				return Nil, true, RuntimeErrorf("lambda parameters must be symbols")
			}
			params = append(params, p.Data.(string))
		}
		return Value{Tag: VTLambda, Data: &Lambda{Params: params, Body: args[1:], Env: env}}, true, nil

	case "begin":
		var last Value = Nil
		for _, f := range args {
			val, err := Eval(f, env)
			if err != nil {
				return Nil, true, err
			}
			last = val
		}
		return last, true, nil

	case "quasiquote":
		if len(args) != 1 {
			return Nil, true, RuntimeErrorf("quasiquote takes one argument, got %d", len(args))
		}
		v, err := evalQuasi(args[0], env, 1)
		return v, true, err

	case "unquote", "unquote-splicing":
		return Nil, true, RuntimeErrorf("%s outside quasiquote", head)
	}
	return Nil, false, nil
}

func evalCall(items []Value, env *Env) (Value, error) {
	fn, err := Eval(items[0], env)
	if err != nil {
		return Nil, err
	}
	args := make([]Value, 0, len(items)-1)
	for _, a := range items[1:] {
		v, err := Eval(a, env)
		if err != nil {
			return Nil, err
		}
		args = append(args, v)
	}
	return Apply(fn, args)
}

// Apply invokes a function value on already-evaluated arguments.
func Apply(fn Value, args []Value) (Value, error) {
	switch fn.Tag {
	case VTNative:
		n := fn.Data.(*Native)
		return n.Fn(args)
	case VTLambda:
		lam := fn.Data.(*Lambda)
		if len(args) != len(lam.Params) {
			return Nil, RuntimeErrorf("lambda takes %d argument(s), got %d", len(lam.Params), len(args))
		}
		frame := NewEnv(lam.Env)
		for i, p := range lam.Params {
			frame.Define(p, args[i])
		}
		var last Value = Nil
		for _, f := range lam.Body {
			v, err := Eval(f, frame)
			if err != nil {
				return Nil, err
			}
			last = v
		}
		return last, nil
	default:
		return Nil, RuntimeErrorf("not a function: %s", FormatValue(fn))
	}
}

// evalQuasi walks a quasiquoted form. depth counts nested quasiquotes;
// unquotes only fire at depth 1.
func evalQuasi(form Value, env *Env, depth int) (Value, error) {
	if form.Tag != VTList {
		return form, nil
	}
	items := form.Items()

	if len(items) == 2 && items[0].Tag == VTSym {
		switch items[0].Data.(string) {
		case "unquote":
			if depth == 1 {
				return Eval(items[1], env)
			}
			inner, err := evalQuasi(items[1], env, depth-1)
			if err != nil {
				return Nil, err
			}
			return List(Sym("unquote"), inner), nil
		case "quasiquote":
			inner, err := evalQuasi(items[1], env, depth+1)
			if err != nil {
				return Nil, err
			}
			return List(Sym("quasiquote"), inner), nil
		}
	}

	out := make([]Value, 0, len(items))
	for _, it := range items {
		// (unquote-splicing x) at depth 1 splices an evaluated list.
		if depth == 1 && it.Tag == VTList {
			kids := it.Items()
			if len(kids) == 2 && kids[0].IsSym("unquote-splicing") {
				spliced, err := Eval(kids[1], env)
				if err != nil {
					return Nil, err
				}
				if spliced.Tag != VTList {
					return Nil, RuntimeErrorf("unquote-splicing needs a list, got %s", FormatValue(spliced))
				}
				out = append(out, spliced.Items()...)
				continue
			}
		}
		v, err := evalQuasi(it, env, depth)
		if err != nil {
			return Nil, err
		}
		out = append(out, v)
	}
	return List(out...), nil
}
