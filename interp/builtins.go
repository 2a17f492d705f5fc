package interp

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lamp100307/Pluto/ast"
)

func (it *Interpreter) checkIndex(node ast.Node, idx Value, n int) int {
	i, ok := intLike(idx)
	if !ok {
		it.fail(node, TypeMismatchError, "index must be int, got '%v'", TypeName(idx))
	}
	if i < 0 || i >= int64(n) {
		it.fail(node, IndexError, "index %v out of range for length %v", i, n)
	}
	return int(i)
}

func (it *Interpreter) index(n *ast.ArrayAccess) Value {
	target := it.eval(n.X)
	idx := it.eval(n.Index)
	switch x := target.(type) {
	case *List:
		return x.Elems[it.checkIndex(n, idx, len(x.Elems))]
	case string:
		runes := []rune(x)
		return string(runes[it.checkIndex(n, idx, len(runes))])
	}
	it.fail(n, TypeMismatchError, "'%v' object is not indexable", TypeName(target))
	return nil
}

// setIndex assigns one list element in place; on a string it replaces
// every occurrence of the character at the index, not only that position.
func (it *Interpreter) setIndex(n *ast.ArraySet) {
	target, _ := it.env.Get(n.Name)
	idx := it.eval(n.Index)
	v := it.eval(n.Value)
	switch x := target.(type) {
	case *List:
		x.Elems[it.checkIndex(n, idx, len(x.Elems))] = v
	case string:
		runes := []rune(x)
		old := string(runes[it.checkIndex(n, idx, len(runes))])
		it.env.Set(n.Name, strings.ReplaceAll(x, old, Format(v)))
	default:
		it.fail(n, TypeMismatchError, "'%v' object does not support item assignment", TypeName(target))
	}
}

func (it *Interpreter) add(n *ast.ArrayAdd) {
	target, _ := it.env.Get(n.Name)
	v := it.eval(n.Value)
	list, ok := target.(*List)
	if !ok {
		it.fail(n, TypeMismatchError, "'%v' object has no method add", TypeName(target))
	}
	list.Elems = append(list.Elems, v)
}

func (it *Interpreter) incDec(n *ast.IncDec) {
	v, ok := it.env.Get(n.Name)
	if !ok {
		it.fail(n, NameError, "name '%v' is not defined", n.Name)
	}
	delta := int64(1)
	if n.Op == "--" {
		delta = -1
	}
	switch x := v.(type) {
	case int64, bool:
		i, _ := intLike(x)
		sum, ok := intArith("+", i, delta)
		if !ok {
			it.fail(n, OverflowError, "integer result of %v%v out of range", n.Name, n.Op)
		}
		it.env.Set(n.Name, sum)
	case float64:
		it.env.Set(n.Name, x+float64(delta))
	default:
		it.fail(n, TypeMismatchError, "unsupported operand type for %v: '%v'", n.Op, TypeName(v))
	}
}

func (it *Interpreter) length(n *ast.Len) Value {
	switch x := it.eval(n.X).(type) {
	case *List:
		return int64(len(x.Elems))
	case string:
		return int64(utf8.RuneCountInString(x))
	case nil:
		it.fail(n, TypeMismatchError, "object of type 'NoneType' has no len()")
	default:
		it.fail(n, TypeMismatchError, "object of type '%v' has no len()", TypeName(x))
	}
	return nil
}

func (it *Interpreter) typeCast(n *ast.TypeCast) Value {
	v := it.eval(n.X)
	switch n.Type {
	case "int":
		return it.toInt(n, v)
	case "str":
		return Format(v)
	case "bool":
		return Truthy(v)
	case "array":
		switch x := v.(type) {
		case string:
			elems := make([]Value, 0, len(x))
			for _, r := range x {
				elems = append(elems, string(r))
			}
			return NewList(elems...)
		case *List:
			return NewList(append([]Value(nil), x.Elems...)...)
		}
		it.fail(n, TypeMismatchError, "'%v' object is not iterable", TypeName(v))
	}
	it.fail(n, ValueError, "unknown type transformation: %v", n.Type)
	return nil
}

func (it *Interpreter) toInt(node ast.Node, v Value) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case bool:
		i, _ := intLike(x)
		return i
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			it.fail(node, ValueError, "cannot convert float %v to integer", formatFloat(x))
		}
		t := math.Trunc(x)
		if t < math.MinInt64 || t >= math.MaxInt64 {
			it.fail(node, ValueError, "float %v out of int range", formatFloat(x))
		}
		return int64(t)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			it.fail(node, ValueError, "int literal %v out of range", quote(x))
		} else if err != nil {
			it.fail(node, ValueError, "invalid literal for int() with base 10: %v", quote(x))
		}
		return i
	}
	it.fail(node, TypeMismatchError, "int() argument must be a string or a number, not '%v'", TypeName(v))
	return 0
}

func (it *Interpreter) random(n *ast.Random) Value {
	lo := it.eval(n.Lo)
	hi := it.eval(n.Hi)
	l, lok := intLike(lo)
	h, hok := intLike(hi)
	if !lok || !hok {
		it.fail(n, TypeMismatchError, "random() bounds must be int, got '%v' and '%v'", TypeName(lo), TypeName(hi))
	}
	if l > h {
		it.fail(n, ValueError, "empty range for random(%v, %v)", l, h)
	}
	return randRange(it.rand, l, h)
}

// randRange returns a uniform int in [lo, hi], which must be non-empty.
func randRange(r *rand.Rand, lo, hi int64) int64 {
	span := uint64(hi) - uint64(lo)
	if span < math.MaxInt64 {
		return lo + r.Int63n(int64(span)+1)
	}
	for {
		if v := r.Uint64(); v <= span {
			return int64(uint64(lo) + v)
		}
	}
}

func (it *Interpreter) input(n *ast.Input) Value {
	prompt, ok := n.Prompt.(*ast.String)
	if !ok {
		it.fail(n, ValueError, "input prompt must be a string literal")
	}
	return it.readLine(n, prompt.Value)
}
