package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lamp100307/Pluto/ast"
	"github.com/lamp100307/Pluto/internal/config"
	"github.com/lamp100307/Pluto/internal/logio"
	"github.com/lamp100307/Pluto/internal/panicerr"
	"github.com/lamp100307/Pluto/interp"
	"github.com/lamp100307/Pluto/lexer"
	"github.com/lamp100307/Pluto/parser"
	"github.com/lamp100307/Pluto/token"
)

// Exit codes, by the stage that failed.
const (
	exitUsage   = 1
	exitParse   = 2
	exitRuntime = 3
)

func main() {
	os.Exit(newApp(os.Stdin, os.Stdout, os.Stderr).execute(context.Background(), os.Args[1:]))
}

type app struct {
	log    logio.Logger
	stdin  io.Reader
	stdout io.Writer

	cfgFile string
	debug   bool
	cfg     *config.Config
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	a := &app{stdin: stdin, stdout: stdout}
	a.log.SetOutput(logio.NopCloser(stderr))
	a.log.LevelStyle = levelStyle(stderr)
	return a
}

// execute runs the command line args, returning the process exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	defer a.log.Close()
	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	if err := cmd.ExecuteContext(ctx); err != nil {
		code := exitUsage
		var ee exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		a.log.Failf(code, "%v", err)
	}
	return a.log.ExitCode()
}

type exitError struct {
	code int
	err  error
}

func (ee exitError) Error() string { return ee.err.Error() }
func (ee exitError) Unwrap() error { return ee.err }

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "pluto [file.pluto]",
		Short: "Run Pluto programs",
		Long: `pluto runs a Pluto program file, or starts an interactive session
when no file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.repl(cmd.Context())
			}
			return a.runFile(cmd.Context(), args[0])
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $PLUTO_CONFIG, ./pluto.toml or ./pluto.yaml)")
	flags.BoolVar(&a.debug, "debug", false, "log tokens and syntax tree before running")
	flags.Bool("trace", false, "log every evaluation step")
	flags.String("trace-file", "", "write trace records to this file instead of stderr")
	flags.Duration("timeout", 0, "time limit for a program run")
	flags.Int("max-depth", config.DefaultMaxDepth, "function call depth limit; 0 for none")
	flags.Int("step-limit", 0, "statement and loop iteration limit; 0 for none")
	flags.Int64("seed", 0, "seed for random(); 0 seeds from the clock")

	root.AddCommand(
		&cobra.Command{
			Use:   "run FILE",
			Short: "Run a Pluto program file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runFile(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "repl",
			Short: "Start an interactive session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.repl(cmd.Context())
			},
		},
		a.tokensCommand(),
		a.astCommand(),
		versionCommand(),
	)
	return root
}

// loadConfig reads the config file, then applies any flags given
// explicitly on the command line over it.
func (a *app) loadConfig(cmd *cobra.Command) (err error) {
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("trace") {
		a.cfg.Trace, _ = flags.GetBool("trace")
	}
	if flags.Changed("trace-file") {
		a.cfg.TraceFile, _ = flags.GetString("trace-file")
		a.cfg.Trace = true
	}
	if flags.Changed("timeout") {
		a.cfg.Timeout.Duration, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("max-depth") {
		a.cfg.MaxDepth, _ = flags.GetInt("max-depth")
	}
	if flags.Changed("step-limit") {
		a.cfg.StepLimit, _ = flags.GetInt("step-limit")
	}
	if flags.Changed("seed") {
		a.cfg.Seed, _ = flags.GetInt64("seed")
	}
	return nil
}

// interpOptions builds interpreter options from the loaded config; the
// returned close func releases any trace file.
func (a *app) interpOptions(in io.Reader) (opts []interp.Option, closeTrace func() error, err error) {
	closeTrace = func() error { return nil }
	opts = append(opts,
		interp.WithInput(in),
		interp.WithOutput(a.stdout),
		interp.WithMaxDepth(a.cfg.MaxDepth),
		interp.WithStepLimit(a.cfg.StepLimit),
	)
	if a.cfg.Seed != 0 {
		opts = append(opts, interp.WithSeed(a.cfg.Seed))
	}
	if !a.cfg.Trace {
		return opts, closeTrace, nil
	}
	if a.cfg.TraceFile == "" {
		return append(opts, interp.WithLogf(a.log.Leveledf("TRACE"))), closeTrace, nil
	}
	f, err := os.Create(a.cfg.TraceFile)
	if err != nil {
		return nil, nil, err
	}
	trace := &logio.Logger{}
	trace.SetOutput(f)
	return append(opts, interp.WithLogf(trace.Leveledf("TRACE"))), trace.Close, nil
}

func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout.Duration > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout.Duration)
	}
	return context.WithCancel(ctx)
}

// lineEndings turns CRLF and lone CR line endings into LF; the tokenizer
// itself rejects carriage returns.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// readSource reads a program file, which must be named *.pluto; a leading
// byte order mark is dropped and line endings are normalized.
func readSource(path string) (string, error) {
	if !strings.HasSuffix(path, ".pluto") {
		return "", fmt.Errorf("%v: not a .pluto file", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return lineEndings.Replace(strings.TrimPrefix(string(b), "\ufeff")), nil
}

// load reads, tokenizes and parses a program file.
func (a *app) load(path string) ([]token.Token, *ast.Program, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, nil, err
	}
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, nil, exitError{exitUsage, fmt.Errorf("%v:%w", path, err)}
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		return toks, nil, exitError{exitParse, fmt.Errorf("%v:%w", path, err)}
	}
	return toks, prog, nil
}

func (a *app) runFile(ctx context.Context, path string) (rerr error) {
	toks, prog, err := a.load(path)
	if a.debug {
		a.logDebug(toks, prog)
	}
	if err != nil {
		return err
	}

	opts, closeTrace, err := a.interpOptions(a.stdin)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeTrace(); rerr == nil {
			rerr = cerr
		}
	}()

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	it := interp.New(opts...)
	defer it.Close()
	if err := it.Run(ctx, prog); err != nil {
		if a.debug && panicerr.IsPanic(err) {
			a.log.Printf("DEBUG", "%s", panicerr.PanicStack(err))
		}
		return exitError{exitRuntime, fmt.Errorf("%v:%w", path, err)}
	}
	return nil
}

func (a *app) logDebug(toks []token.Token, prog *ast.Program) {
	for _, tok := range toks {
		a.log.Printf("DEBUG", "%v %v", tok.Pos, tok)
	}
	if prog != nil {
		lw := logio.Writer{Logf: a.log.Leveledf("DEBUG")}
		a.log.ErrorIf(ast.Dump(&lw, prog))
		lw.Close()
	}
}
