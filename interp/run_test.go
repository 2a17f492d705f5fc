package interp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lamp100307/Pluto/ast"
	"github.com/lamp100307/Pluto/internal/logio"
	"github.com/lamp100307/Pluto/lexer"
	"github.com/lamp100307/Pluto/parser"
)

type runTestCases []runTestCase

func (rts runTestCases) run(t *testing.T) {
	{
		var exclusive []runTestCase
		for _, rt := range rts {
			if rt.exclusive {
				exclusive = append(exclusive, rt)
			}
		}
		if len(exclusive) > 0 {
			rts = exclusive
		}
	}
	for _, rt := range rts {
		if !t.Run(rt.name, rt.run) {
			return
		}
	}
}

func runTest(name string) (rt runTestCase) {
	rt.name = name
	return rt
}

type optFunc func(it *Interpreter)

func (f optFunc) apply(it *Interpreter) { f(it) }

type runTestCase struct {
	name    string
	src     []string
	opts    []interface{}
	expect  []func(t *testing.T, it *Interpreter)
	timeout time.Duration
	wantErr []error
	wantMsg string

	exclusive   bool
	nextInputID int
}

func (rt runTestCase) apply(wraps ...func(runTestCase) runTestCase) runTestCase {
	for _, wrap := range wraps {
		rt = wrap(rt)
	}
	return rt
}

func (rt runTestCase) exclusiveTest() runTestCase {
	rt.exclusive = true
	return rt
}

func (rt runTestCase) withOptions(opts ...Option) runTestCase {
	for _, opt := range opts {
		rt.opts = append(rt.opts, opt)
	}
	return rt
}

func (rt runTestCase) withSource(lines ...string) runTestCase {
	rt.src = append(rt.src, lines...)
	return rt
}

func (rt runTestCase) withVar(name string, v Value) runTestCase {
	rt.opts = append(rt.opts, optFunc(func(it *Interpreter) {
		it.env.Set(name, v)
	}))
	return rt
}

func (rt runTestCase) withInput(input string) runTestCase {
	rt.opts = append(rt.opts, func(rt *runTestCase, t *testing.T) Option {
		name := t.Name() + "/input"
		if id := rt.nextInputID; id > 0 {
			name += fmt.Sprintf("_%v", id+1)
		}
		rt.nextInputID++
		return WithInput(namedReader{name, strings.NewReader(input)})
	})
	return rt
}

func (rt runTestCase) withSeed(seed int64) runTestCase {
	rt.opts = append(rt.opts, WithSeed(seed))
	return rt
}

func (rt runTestCase) withStepLimit(limit int) runTestCase {
	rt.opts = append(rt.opts, WithStepLimit(limit))
	return rt
}

func (rt runTestCase) withMaxDepth(depth int) runTestCase {
	rt.opts = append(rt.opts, WithMaxDepth(depth))
	return rt
}

func (rt runTestCase) withTimeout(timeout time.Duration) runTestCase {
	rt.timeout = timeout
	return rt
}

func (rt runTestCase) expectError(err error) runTestCase {
	rt.wantErr = append(rt.wantErr, err)
	return rt
}

func (rt runTestCase) expectErrorMessage(mess string) runTestCase {
	rt.wantMsg = mess
	return rt
}

func (rt runTestCase) expectOutput(lines ...string) runTestCase {
	var out strings.Builder
	rt.opts = append(rt.opts, WithOutput(&out))
	rt.expect = append(rt.expect, func(t *testing.T, it *Interpreter) {
		want := ""
		if len(lines) > 0 {
			want = strings.Join(lines, "\n") + "\n"
		}
		assert.Equal(t, want, out.String(), "expected output")
	})
	return rt
}

func (rt runTestCase) expectRawOutput(output string) runTestCase {
	var out strings.Builder
	rt.opts = append(rt.opts, WithOutput(&out))
	rt.expect = append(rt.expect, func(t *testing.T, it *Interpreter) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return rt
}

func (rt runTestCase) expectVar(name string, v Value) runTestCase {
	rt.expect = append(rt.expect, func(t *testing.T, it *Interpreter) {
		got, ok := it.env.Get(name)
		if assert.True(t, ok, "expected %v to be bound", name) {
			assert.Equal(t, v, got, "expected %v value", name)
		}
	})
	return rt
}

func (rt runTestCase) expectUnbound(name string) runTestCase {
	rt.expect = append(rt.expect, func(t *testing.T, it *Interpreter) {
		_, ok := it.env.Get(name)
		assert.False(t, ok, "expected %v to be unbound", name)
	})
	return rt
}

func (rt runTestCase) expectResult(v Value) runTestCase {
	rt.expect = append(rt.expect, func(t *testing.T, it *Interpreter) {
		assert.Equal(t, v, it.Result(), "expected result of last statement")
	})
	return rt
}

func (rt runTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	prog := rt.parse(t)
	if t.Failed() {
		return
	}

	if testFails(func(t *testing.T) {
		rt.runInterpTest(context.Background(), t, prog, rt.build(t))
	}) {
		it := rt.build(t)
		WithLogf(t.Logf).apply(it)
		rt.runInterpTest(context.Background(), t, prog, it)
	}
}

func (rt runTestCase) parse(t *testing.T) *ast.Program {
	src := strings.Join(rt.src, "\n")
	toks, err := lexer.Tokenize(src)
	if !assert.NoError(t, err, "unexpected tokenize error") {
		return nil
	}
	prog, err := parser.Parse(toks)
	if !assert.NoError(t, err, "unexpected parse error") {
		return nil
	}
	return prog
}

func (rt runTestCase) runInterpTest(ctx context.Context, t *testing.T, prog *ast.Program, it *Interpreter) {
	const defaultTimeout = time.Second
	timeout := rt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			rt.dumpToTest(t, prog)
		}
	}()

	err := rt.runInterp(ctx, prog, it)
	if len(rt.wantErr) > 0 || rt.wantMsg != "" {
		for _, want := range rt.wantErr {
			assert.True(t, errors.Is(err, want), "expected error: %v\ngot: %+v", want, err)
		}
		if rt.wantMsg != "" && assert.Error(t, err, "expected an error") {
			assert.Equal(t, rt.wantMsg, err.Error(), "expected error message")
		}
	} else {
		assert.NoError(t, err, "unexpected run error")
	}

	if !t.Failed() {
		for _, expect := range rt.expect {
			expect(t, it)
		}
	}
}

func (rt runTestCase) runInterp(ctx context.Context, prog *ast.Program, it *Interpreter) (rerr error) {
	defer func() {
		if err := it.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("interpreter Close failed: %w", err)
		}
	}()
	return it.Run(ctx, prog)
}

func (rt runTestCase) build(t *testing.T) *Interpreter {
	var opt Option
	var late []Option
	for _, o := range rt.opts {
		switch impl := o.(type) {
		case func(rt *runTestCase, t *testing.T) Option:
			opt = Options(opt, impl(&rt, t))
		case optFunc:
			late = append(late, impl)
		case Option:
			opt = Options(opt, impl)
		default:
			t.Logf("unsupported runTestCase opt type %T", o)
			t.FailNow()
		}
	}
	it := New(WithSeed(1), opt)
	Options(late...).apply(it)
	return it
}

func (rt runTestCase) dumpToTest(t *testing.T, prog *ast.Program) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	ast.Dump(&lw, prog)
}

//// utilities

func testFails(fn func(t *testing.T)) bool {
	var fakeT testing.T
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(&fakeT)
	}()
	<-done
	return fakeT.Failed()
}

type namedReader struct {
	name string
	*strings.Reader
}

func (nr namedReader) Name() string { return nr.name }
