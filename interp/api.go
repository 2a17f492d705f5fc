package interp

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/lamp100307/Pluto/ast"
	"github.com/lamp100307/Pluto/internal/flushio"
	"github.com/lamp100307/Pluto/internal/panicerr"
)

// New returns an Interpreter with a fresh environment, print output
// discarded, no input, and a time seeded random source, as modified by
// opts.
func New(opts ...Option) *Interpreter {
	var it Interpreter
	defaultOptions.apply(&it)
	Options(opts...).apply(&it)
	if it.env == nil {
		it.env = NewEnv()
	}
	if it.rand == nil {
		it.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &it
}

// Run executes prog's statements in order against the interpreter's
// environment. The first failure aborts the program: runtime errors are
// returned as *Error, cancellation of ctx as an error wrapping ctx.Err(),
// and any Go panic as a recovered panicerr.Error.
func (it *Interpreter) Run(ctx context.Context, prog *ast.Program) error {
	err := panicerr.Recover("interp", func() error {
		return it.run(ctx, prog)
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	if ferr := it.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// Env returns the environment programs run against.
func (it *Interpreter) Env() *Env { return it.env }

// Result returns the value of the last statement executed by the latest
// successful Run, or nil.
func (it *Interpreter) Result() Value { return it.last }

// Run executes prog against env, or a fresh environment if env is nil,
// returning the final environment and the lines printed.
func Run(ctx context.Context, prog *ast.Program, env *Env, opts ...Option) (*Env, []string, error) {
	var out flushio.LineBuffer
	it := New(Options(opts...), WithEnv(env), WithTee(&out))
	err := it.Run(ctx, prog)
	if cerr := it.Close(); err == nil {
		err = cerr
	}
	return it.Env(), out.Lines(), err
}
