// printer.go: canonical text for forms and values
//
// FormatValue renders a Value the way the reader would accept it back:
// strings quoted and escaped, lists parenthesized, quote family printed
// in tag notation. The console uses it both to echo the compiled form of
// a turn on the diagnostic channel and to display results.
package lys

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders v as reader-compatible text.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return formatFloat(v.Data.(float64))
	case VTStr:
		return quoteString(v.Data.(string))
	case VTSym:
		return v.Data.(string)
	case VTList:
		return formatList(v.Items())
	case VTNative:
		return "#<builtin " + v.Data.(*Native).Name + ">"
	case VTLambda:
		return "#<lambda (" + strings.Join(v.Data.(*Lambda).Params, " ") + ")>"
	default:
		return fmt.Sprintf("#<unknown %v>", v.Data)
	}
}

// FormatForms renders a compiled unit's forms, one per line. This is the
// text echoed on the diagnostic channel for a successful turn.
func FormatForms(forms []Value) string {
	parts := make([]string, 0, len(forms))
	for _, f := range forms {
		parts = append(parts, FormatValue(f))
	}
	return strings.Join(parts, "\n")
}

func formatList(items []Value) string {
	// Quote family prints in tag notation: (quote x) → 'x.
	if len(items) == 2 && items[0].Tag == VTSym {
		if tag, ok := tagFor(items[0].Data.(string)); ok {
			return tag + FormatValue(items[1])
		}
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, FormatValue(it))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func tagFor(head string) (string, bool) {
	switch head {
	case "quote":
		return "'", true
	case "quasiquote":
		return "`", true
	case "unquote":
		return ",", true
	case "unquote-splicing":
		return ",@", true
	default:
		return "", false
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Keep a float distinguishable from an int when it round-trips.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
