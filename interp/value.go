package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/lamp100307/Pluto/ast"
)

// Value is a Pluto runtime value, one of:
//
//	int64      int
//	float64    float
//	string     str
//	bool       bool
//	*List      list, shared by reference
//	*Function  function record
//	nil        none, the result of statements that produce nothing
type Value interface{}

// List is a mutable sequence; every name bound to the same *List sees its
// mutations.
type List struct {
	Elems []Value
}

// NewList returns a list holding elems.
func NewList(elems ...Value) *List { return &List{Elems: elems} }

// Function is the record bound by a func definition.
type Function struct {
	Name   string
	Params []ast.Param
	Body   *ast.Program
}

// TypeName returns the name of v's runtime type, as reported by type() and
// checked against parameter annotations.
func TypeName(v Value) string {
	switch v.(type) {
	case int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "str"
	case bool:
		return "bool"
	case *List:
		return "list"
	case *Function:
		return "function"
	case nil:
		return "NoneType"
	}
	return "unknown"
}

// annotationMatches reports whether v satisfies a parameter annotation;
// the array annotation names lists.
func annotationMatches(annot string, v Value) bool {
	if annot == "array" {
		annot = "list"
	}
	return TypeName(v) == annot
}

// Truthy reports whether v counts as true in a condition: zero numbers,
// empty strings and lists, false and none are falsy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case bool:
		return x
	case *List:
		return len(x.Elems) > 0
	case nil:
		return false
	}
	return true
}

// Format returns the printed form of v; strings are written raw, while
// strings inside lists are quoted.
func Format(v Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	var sb strings.Builder
	writeRepr(&sb, v, nil)
	return sb.String()
}

// Repr returns the quoted form of v, as used for list elements.
func Repr(v Value) string {
	var sb strings.Builder
	writeRepr(&sb, v, nil)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v Value, open map[*List]bool) {
	switch x := v.(type) {
	case int64:
		sb.WriteString(strconv.FormatInt(x, 10))
	case float64:
		sb.WriteString(formatFloat(x))
	case string:
		sb.WriteString(quote(x))
	case bool:
		if x {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case nil:
		sb.WriteString("None")
	case *Function:
		sb.WriteString("<function ")
		sb.WriteString(x.Name)
		sb.WriteByte('>')
	case *List:
		if open[x] {
			sb.WriteString("[...]")
			return
		}
		if open == nil {
			open = make(map[*List]bool)
		}
		open[x] = true
		sb.WriteByte('[')
		for i, elem := range x.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeRepr(sb, elem, open)
		}
		sb.WriteByte(']')
		delete(open, x)
	default:
		sb.WriteString("<unknown>")
	}
}

// formatFloat renders f in its shortest round-trip form, always showing a
// fraction or exponent, switching to exponent form outside [1e-4, 1e16).
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// quote single quotes s unless it contains a single quote and no double
// quote; only the chosen quote, backslash and control characters are
// escaped.
func quote(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			sb.WriteString(`\x`)
			sb.WriteString(strconv.FormatInt(int64(r)|0x100, 16)[1:])
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
