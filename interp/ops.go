package interp

import (
	"fmt"
	"math"
)

// opError is returned by the operator helpers; the evaluator attaches the
// failing node's position.
type opError struct {
	kind ErrorKind
	msg  string
}

func (err *opError) Error() string { return fmt.Sprintf("%v: %v", err.kind, err.msg) }

func unsupported(op string, a, b Value) *opError {
	return &opError{TypeMismatchError, fmt.Sprintf(
		"unsupported operand type(s) for %v: '%v' and '%v'", op, TypeName(a), TypeName(b))}
}

// numeric converts int-like values (int and bool) to int64 and floats to
// float64, reporting which it found.
func numeric(v Value) (i int64, f float64, isFloat, ok bool) {
	switch x := v.(type) {
	case int64:
		return x, float64(x), false, true
	case bool:
		if x {
			return 1, 1, false, true
		}
		return 0, 0, false, true
	case float64:
		return 0, x, true, true
	}
	return 0, 0, false, false
}

// intLike returns v as an int64 if it is an int or bool.
func intLike(v Value) (int64, bool) {
	i, _, isFloat, ok := numeric(v)
	return i, ok && !isFloat
}

func binaryOp(op string, a, b Value) (Value, error) {
	switch op {
	case "+", "-", "*", "/":
		return arith(op, a, b)
	case "==":
		return equal(a, b, 0)
	case "!=":
		eq, err := equal(a, b, 0)
		if err != nil {
			return nil, err
		}
		return !eq, nil
	case "<", ">", "<=", ">=":
		return ordered(op, a, b)
	case "and":
		if !Truthy(a) {
			return a, nil
		}
		return b, nil
	case "or":
		if Truthy(a) {
			return a, nil
		}
		return b, nil
	case "xor":
		if ab, ok := a.(bool); ok {
			if bb, ok := b.(bool); ok {
				return ab != bb, nil
			}
		}
		ai, aok := intLike(a)
		bi, bok := intLike(b)
		if !aok || !bok {
			return nil, unsupported("^", a, b)
		}
		return ai ^ bi, nil
	}
	return nil, &opError{OperatorError, fmt.Sprintf("unknown operator %q", op)}
}

func arith(op string, a, b Value) (Value, error) {
	ai, af, aFloat, aok := numeric(a)
	bi, bf, bFloat, bok := numeric(b)
	if aok && bok {
		if op == "/" {
			if bf == 0 {
				return nil, &opError{ZeroDivisionError, "division by zero"}
			}
			return af / bf, nil
		}
		if aFloat || bFloat {
			switch op {
			case "+":
				return af + bf, nil
			case "-":
				return af - bf, nil
			default:
				return af * bf, nil
			}
		}
		if v, ok := intArith(op, ai, bi); ok {
			return v, nil
		}
		return nil, &opError{OverflowError, fmt.Sprintf("integer result of %v %v %v out of range", ai, op, bi)}
	}

	switch op {
	case "+":
		switch x := a.(type) {
		case string:
			if y, ok := b.(string); ok {
				return x + y, nil
			}
		case *List:
			if y, ok := b.(*List); ok {
				elems := make([]Value, 0, len(x.Elems)+len(y.Elems))
				elems = append(elems, x.Elems...)
				return NewList(append(elems, y.Elems...)...), nil
			}
		}
	case "*":
		if n, ok := intLike(b); ok {
			if v, ok := repeat(a, n); ok {
				return v, nil
			}
		}
		if n, ok := intLike(a); ok {
			if v, ok := repeat(b, n); ok {
				return v, nil
			}
		}
	}
	return nil, unsupported(op, a, b)
}

// intArith applies + - or * to ints, reporting false if the result does
// not fit in an int64.
func intArith(op string, a, b int64) (int64, bool) {
	switch op {
	case "+":
		c := a + b
		return c, (a^c)&(b^c) >= 0
	case "-":
		c := a - b
		return c, (a^b)&(a^c) >= 0
	default:
		if a == 0 || b == 0 {
			return 0, true
		}
		c := a * b
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || c/b != a {
			return c, false
		}
		return c, true
	}
}

// maxRepeat bounds the length of repeated strings and lists.
const maxRepeat = 1 << 28

func repeat(v Value, n int64) (Value, bool) {
	switch x := v.(type) {
	case string:
		if n <= 0 || x == "" {
			return "", true
		}
		if n > maxRepeat/int64(len(x)) {
			return nil, false
		}
		out := make([]byte, 0, int64(len(x))*n)
		for i := int64(0); i < n; i++ {
			out = append(out, x...)
		}
		return string(out), true
	case *List:
		if n <= 0 || len(x.Elems) == 0 {
			return NewList(), true
		}
		if n > maxRepeat/int64(len(x.Elems)) {
			return nil, false
		}
		elems := make([]Value, 0, int64(len(x.Elems))*n)
		for i := int64(0); i < n; i++ {
			elems = append(elems, x.Elems...)
		}
		return NewList(elems...), true
	}
	return nil, false
}

// maxCompareDepth bounds recursion into nested lists while comparing.
const maxCompareDepth = 1000

func equal(a, b Value, depth int) (bool, error) {
	if depth > maxCompareDepth {
		return false, &opError{RecursionError, "maximum recursion depth exceeded in comparison"}
	}
	if ai, af, aFloat, aok := numeric(a); aok {
		bi, bf, bFloat, bok := numeric(b)
		if !bok {
			return false, nil
		}
		if aFloat || bFloat {
			return af == bf, nil
		}
		return ai == bi, nil
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y, nil
	case nil:
		return b == nil, nil
	case *Function:
		y, ok := b.(*Function)
		return ok && x == y, nil
	case *List:
		y, ok := b.(*List)
		if !ok {
			return false, nil
		}
		if x == y {
			return true, nil
		}
		if len(x.Elems) != len(y.Elems) {
			return false, nil
		}
		for i := range x.Elems {
			eq, err := equal(x.Elems[i], y.Elems[i], depth+1)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	}
	return false, nil
}

func ordered(op string, a, b Value) (Value, error) {
	c, err := compare(op, a, b, 0)
	if err != nil {
		return nil, err
	}
	switch op {
	case "<":
		return c < 0, nil
	case ">":
		return c > 0, nil
	case "<=":
		return c <= 0, nil
	default:
		return c >= 0, nil
	}
}

// compare orders a and b, returning a negative, zero or positive result.
// NaN compares as unordered, so every ordering operator yields false.
func compare(op string, a, b Value, depth int) (int, error) {
	if depth > maxCompareDepth {
		return 0, &opError{RecursionError, "maximum recursion depth exceeded in comparison"}
	}
	ai, af, aFloat, aok := numeric(a)
	bi, bf, bFloat, bok := numeric(b)
	switch {
	case aok && bok && (aFloat || bFloat):
		switch {
		case math.IsNaN(af) || math.IsNaN(bf):
			return nanOrder(op), nil
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		}
		return 0, nil
	case aok && bok:
		switch {
		case ai < bi:
			return -1, nil
		case ai > bi:
			return 1, nil
		}
		return 0, nil
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			switch {
			case x < y:
				return -1, nil
			case x > y:
				return 1, nil
			}
			return 0, nil
		}
	case *List:
		if y, ok := b.(*List); ok {
			for i := 0; i < len(x.Elems) && i < len(y.Elems); i++ {
				eq, err := equal(x.Elems[i], y.Elems[i], depth+1)
				if err != nil {
					return 0, err
				}
				if !eq {
					return compare(op, x.Elems[i], y.Elems[i], depth+1)
				}
			}
			return len(x.Elems) - len(y.Elems), nil
		}
	}
	return 0, &opError{TypeMismatchError, fmt.Sprintf(
		"'%v' not supported between instances of '%v' and '%v'", op, TypeName(a), TypeName(b))}
}

// nanOrder returns a comparison result that makes op evaluate false.
func nanOrder(op string) int {
	switch op {
	case "<", "<=":
		return 1
	default:
		return -1
	}
}
