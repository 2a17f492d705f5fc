// Package interp evaluates Pluto programs by walking their syntax trees.
//
// All names live in one flat environment. A function call snapshots that
// environment's bindings before binding its parameters and restores them
// when the call ends, which undoes every name the call bound or rebound.
// Lists are shared by reference, so elements a call adds or replaces in a
// list stay changed.
package interp

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/lamp100307/Pluto/ast"
)

// Interpreter runs programs against an environment that persists across
// calls to Run.
type Interpreter struct {
	logging
	ioCore

	env  *Env
	rand *rand.Rand

	maxDepth  int
	stepLimit int

	ctx   context.Context
	steps int
	depth int
	last  Value
}

func (it *Interpreter) run(ctx context.Context, prog *ast.Program) error {
	it.ctx, it.steps, it.depth, it.last = ctx, 0, 0, nil
	defer func() { it.ctx = nil }()
	for _, stmt := range prog.Body {
		it.last = it.exec(stmt)
	}
	return nil
}

func (it *Interpreter) halt(err error) {
	it.logf(markError, "%v", err)
	panic(haltError{err})
}

func (it *Interpreter) fail(node ast.Node, kind ErrorKind, format string, args ...interface{}) {
	it.halt(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: node.Pos()})
}

func (it *Interpreter) opFail(node ast.Node, err error) {
	var oe *opError
	if errors.As(err, &oe) {
		it.fail(node, oe.kind, "%s", oe.msg)
	}
	it.halt(err)
}

// checkpoint runs before every statement and loop iteration, enforcing
// cancellation and the step limit.
func (it *Interpreter) checkpoint(node ast.Node) {
	if it.ctx != nil {
		if err := it.ctx.Err(); err != nil {
			it.halt(fmt.Errorf("%v: interrupted: %w", node.Pos(), err))
		}
	}
	it.steps++
	if it.stepLimit > 0 && it.steps > it.stepLimit {
		it.fail(node, StepLimitError, "exceeded %v steps", it.stepLimit)
	}
}

// exec runs one statement, returning its result.
func (it *Interpreter) exec(stmt ast.Node) Value {
	it.checkpoint(stmt)
	it.logf(markStmt, "%v %v", stmt.Pos(), nodeName(stmt))
	return it.eval(stmt)
}

func (it *Interpreter) execBlock(block *ast.Program) {
	for _, stmt := range block.Body {
		it.exec(stmt)
	}
}

func (it *Interpreter) loop(node, cond ast.Node, body *ast.Program) {
	for {
		it.checkpoint(node)
		if !Truthy(it.eval(cond)) {
			return
		}
		it.execBlock(body)
	}
}

func (it *Interpreter) eval(node ast.Node) Value {
	switch n := node.(type) {
	case *ast.Number:
		if n.IsFloat {
			return n.Float
		}
		return n.Int
	case *ast.Bool:
		return n.Value
	case *ast.String:
		return n.Value

	case *ast.Variable:
		v, ok := it.env.Get(n.Name)
		if !ok {
			it.fail(n, NameError, "name '%v' is not defined", n.Name)
		}
		return v

	case *ast.Assign:
		v := it.eval(n.X)
		it.env.Set(n.Name, v)
		it.logf(markValue, "%v = %v", n.Name, Repr(v))
		return v

	case *ast.Print:
		v := it.eval(n.X)
		it.writeString(Format(v) + "\n")
		return v

	case *ast.BinOp:
		a := it.eval(n.Left)
		b := it.eval(n.Right)
		v, err := binaryOp(n.Op, a, b)
		if err != nil {
			it.opFail(n, err)
		}
		return v

	case *ast.Not:
		return !Truthy(it.eval(n.X))

	case *ast.If:
		if Truthy(it.eval(n.Cond)) {
			it.execBlock(n.Then)
		} else if n.Else != nil {
			it.execBlock(n.Else)
		}
		return nil

	case *ast.While:
		it.loop(n, n.Cond, n.Body)
		return nil

	case *ast.For:
		it.exec(n.Init)
		it.loop(n, n.Cond, n.Body)
		return nil

	case *ast.Func:
		it.env.Set(n.Name, &Function{Name: n.Name, Params: n.Params, Body: n.Body})
		return nil

	case *ast.FuncCall:
		return it.call(n)

	case *ast.Return:
		return it.eval(n.X)

	case *ast.Program:
		it.execBlock(n)
		return nil

	case *ast.Array:
		elems := make([]Value, len(n.Elems))
		for i, elem := range n.Elems {
			elems[i] = it.eval(elem)
		}
		return NewList(elems...)

	case *ast.ArrayAccess:
		return it.index(n)
	case *ast.ArraySet:
		it.setIndex(n)
		return nil
	case *ast.ArrayAdd:
		it.add(n)
		return nil
	case *ast.IncDec:
		it.incDec(n)
		return nil
	case *ast.Len:
		return it.length(n)
	case *ast.TypeOf:
		return TypeName(it.eval(n.X))
	case *ast.TypeCast:
		return it.typeCast(n)
	case *ast.Random:
		return it.random(n)
	case *ast.Input:
		return it.input(n)
	}
	panic(fmt.Sprintf("unexpected syntax node %T", node))
}
