// form.go: the Lys value representation
//
// Lys is homoiconic: the reader produces Values and the evaluator both
// consumes and produces them. A Value is a small tagged struct; Data holds
// the payload for the given tag:
//
//	VTNil     nil
//	VTBool    bool
//	VTInt     int64
//	VTNum     float64
//	VTStr     string
//	VTSym     string (symbol name)
//	VTList    []Value
//	VTNative  *Native
//	VTLambda  *Lambda
package lys

// VTag discriminates the payload of a Value.
type VTag int

const (
	VTNil VTag = iota
	VTBool
	VTInt
	VTNum
	VTStr
	VTSym
	VTList
	VTNative
	VTLambda
)

// Value is a Lys form or runtime value.
type Value struct {
	Tag  VTag
	Data any
}

// Nil is the nil value (also the result of forms with nothing to show).
var Nil = Value{Tag: VTNil}

func Bool(b bool) Value      { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value      { return Value{Tag: VTInt, Data: n} }
func Num(f float64) Value    { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value     { return Value{Tag: VTStr, Data: s} }
func Sym(name string) Value  { return Value{Tag: VTSym, Data: name} }
func List(xs ...Value) Value { return Value{Tag: VTList, Data: xs} }

// Native is a builtin function implemented in Go. Name is used by the
// printer and in arity/type diagnostics.
type Native struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// Lambda is a user function closing over the environment it was made in.
type Lambda struct {
	Params []string
	Body   []Value
	Env    *Env
}

// Items returns the elements of a list value, or nil for anything else.
func (v Value) Items() []Value {
	if v.Tag != VTList {
		return nil
	}
	return v.Data.([]Value)
}

// IsSym reports whether v is the symbol named name.
func (v Value) IsSym(name string) bool {
	return v.Tag == VTSym && v.Data.(string) == name
}

// Truthy: nil and false are false, everything else is true.
func (v Value) Truthy() bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// Equal is deep structural equality (used by the `=` builtin and tests).
// Ints and floats compare across tags when numerically equal.
func Equal(a, b Value) bool {
	if a.Tag == VTList && b.Tag == VTList {
		as, bs := a.Items(), b.Items()
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if an, aok := asNum(a); aok {
		if bn, bok := asNum(b); bok {
			return an == bn
		}
		return false
	}
	return a.Tag == b.Tag && a.Data == b.Data
}

func asNum(v Value) (float64, bool) {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64)), true
	case VTNum:
		return v.Data.(float64), true
	default:
		return 0, false
	}
}
