package interp

import (
	"strings"

	"github.com/lamp100307/Pluto/ast"
)

func (it *Interpreter) call(n *ast.FuncCall) Value {
	v, _ := it.env.Get(n.Name)
	fn, ok := v.(*Function)
	if !ok {
		it.fail(n, NameError, "function '%v' is not defined", n.Name)
	}
	if len(n.Args) != len(fn.Params) {
		it.fail(n, ArityError, "%v() takes %v arguments but %v were given", fn.Name, len(fn.Params), len(n.Args))
	}
	if it.maxDepth > 0 && it.depth >= it.maxDepth {
		it.fail(n, RecursionError, "maximum recursion depth %v exceeded", it.maxDepth)
	}

	snap := it.env.snapshot()
	defer it.env.restore(snap)

	args := make([]Value, len(n.Args))
	for i, arg := range n.Args {
		v := it.eval(arg)
		if p := fn.Params[i]; p.Type != "" && !annotationMatches(p.Type, v) {
			it.fail(arg, TypeMismatchError, "argument '%v' of %v() expects type '%v', got '%v'",
				p.Name, fn.Name, p.Type, TypeName(v))
		}
		args[i] = v
	}
	for i, p := range fn.Params {
		it.env.Set(p.Name, args[i])
	}

	if it.logfn != nil {
		reprs := make([]string, len(args))
		for i, arg := range args {
			reprs[i] = Repr(arg)
		}
		it.logf(markCall, "%v(%v)", fn.Name, strings.Join(reprs, ", "))
	}

	it.depth++
	it.markWidth = it.depth + 1
	defer func() {
		it.depth--
		it.markWidth = it.depth + 1
	}()

	result, returned := it.execBody(fn.Body)
	if returned {
		it.logf(markValue, "%v returned %v", fn.Name, Repr(result))
	} else {
		it.logf(markValue, "%v finished with %v", fn.Name, Repr(result))
	}
	return result
}

// execBody runs a function body; a Return that is a direct statement of
// the body stops it, while one nested in a block only yields its value to
// that block.
func (it *Interpreter) execBody(body *ast.Program) (result Value, returned bool) {
	for _, stmt := range body.Body {
		result = it.exec(stmt)
		if _, isReturn := stmt.(*ast.Return); isReturn {
			return result, true
		}
	}
	return result, false
}
