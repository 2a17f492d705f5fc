package interp

import (
	"io"
	"math/rand"

	"github.com/lamp100307/Pluto/internal/flushio"
)

// Option configures an Interpreter under New.
type Option interface{ apply(it *Interpreter) }

// Options combines any number of options into one, applied in order.
func Options(opts ...Option) Option { return options(opts) }

type options []Option

func (opts options) apply(it *Interpreter) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(it)
		}
	}
}

// DefaultMaxDepth bounds nested function calls unless WithMaxDepth says
// otherwise.
const DefaultMaxDepth = 1000

var defaultOptions = options{
	outputOption{io.Discard},
	withMaxDepth(DefaultMaxDepth),
}

// WithInput queues r as a source of lines for input(); several inputs are
// read one after another.
func WithInput(r io.Reader) Option { return inputOption{r} }

// WithOutput directs print output to w, replacing any prior output.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithTee copies print output to w in addition to the current output.
func WithTee(w io.Writer) Option { return teeOption{w} }

// WithLogf sets a printf-style sink receiving one record per evaluation
// step; it only observes evaluation.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithRand sets the source used by random().
func WithRand(r *rand.Rand) Option { return randOption{r} }

// WithSeed seeds a new source for random().
func WithSeed(seed int64) Option { return randOption{rand.New(rand.NewSource(seed))} }

// WithMaxDepth bounds nested function calls; zero or less means unbounded.
func WithMaxDepth(depth int) Option { return withMaxDepth(depth) }

// WithStepLimit bounds the number of statements and loop iterations
// executed by one Run; zero or less means unbounded.
func WithStepLimit(limit int) Option { return stepLimitOption(limit) }

// WithEnv runs against env instead of a fresh environment; a nil env is
// ignored.
func WithEnv(env *Env) Option { return envOption{env} }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type withLogfn func(mess string, args ...interface{})
type randOption struct{ *rand.Rand }
type withMaxDepth int
type stepLimitOption int
type envOption struct{ *Env }

func (i inputOption) apply(it *Interpreter) {
	it.in.Queue = append(it.in.Queue, i.Reader)
}

func (o outputOption) apply(it *Interpreter) {
	if it.out != nil {
		it.out.Flush()
	}
	it.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(it *Interpreter) {
	it.out = flushio.WriteFlushers(it.out, flushio.NewWriteFlusher(o.Writer))
}

func (logfn withLogfn) apply(it *Interpreter) { it.logfn = logfn }
func (r randOption) apply(it *Interpreter)    { it.rand = r.Rand }
func (d withMaxDepth) apply(it *Interpreter)  { it.maxDepth = int(d) }
func (lim stepLimitOption) apply(it *Interpreter) {
	it.stepLimit = int(lim)
}

func (e envOption) apply(it *Interpreter) {
	if e.Env != nil {
		it.env = e.Env
	}
}
