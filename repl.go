package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/lamp100307/Pluto/ast"
	"github.com/lamp100307/Pluto/interp"
	"github.com/lamp100307/Pluto/lexer"
	"github.com/lamp100307/Pluto/parser"
)

const (
	promptMain = "pluto> "
	promptCont = "...    "
)

const replHelp = `:help   show this help
:env    list variables and functions
:funcs  list declared function names
:quit   leave the session (also Ctrl-D)
A blank line ends an incomplete statement.`

// prompter reads one line of input per call; *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func (a *app) repl(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if a.cfg.History != "" {
		if f, err := os.Open(a.cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(a.cfg.History); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	return a.session(ctx, ln)
}

// session holds the state that persists across repl inputs: one parser,
// so declared functions stay callable, and one interpreter, so variables
// stay bound.
type session struct {
	*app
	in     prompter
	parser *parser.Parser
	it     *interp.Interpreter
	result lipgloss.Style
}

func (a *app) session(ctx context.Context, in prompter) (rerr error) {
	opts, closeTrace, err := a.interpOptions(&promptReader{in: in})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeTrace(); rerr == nil {
			rerr = cerr
		}
	}()

	banner, result := replStyles(a.stdout)
	s := session{
		app:    a,
		in:     in,
		parser: parser.New(),
		it:     interp.New(opts...),
		result: result,
	}
	defer s.it.Close()

	fmt.Fprintf(a.stdout, "%v  (:help for commands)\n", banner.Render("Pluto v"+Version))
	for {
		src, prog, err := s.read()
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(a.stdout)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			var lexErr *lexer.LexError
			var parseErr *parser.ParseError
			if !errors.As(err, &lexErr) && !errors.As(err, &parseErr) {
				return err
			}
			s.in.AppendHistory(src)
			s.log.Printf("ERROR", "%v", err)
			continue
		}

		cmd := strings.TrimSpace(src)
		if cmd == "" {
			continue
		}
		s.in.AppendHistory(src)
		if strings.HasPrefix(cmd, ":") {
			if quit := s.command(cmd); quit {
				return nil
			}
			continue
		}
		s.eval(ctx, prog)
	}
}

// read collects lines until they form a complete program; a blank line
// ends an incomplete one, reporting its error.
func (s *session) read() (string, *ast.Program, error) {
	var sb strings.Builder
	for {
		prompt := promptMain
		if sb.Len() > 0 {
			prompt = promptCont
		}
		line, err := s.in.Prompt(prompt)
		if err != nil {
			return sb.String(), nil, err
		}

		final := false
		if sb.Len() > 0 {
			final = strings.TrimSpace(line) == ""
			sb.WriteByte('\n')
		} else if cmd := strings.TrimSpace(line); cmd == "" || strings.HasPrefix(cmd, ":") {
			return line, nil, nil
		}
		sb.WriteString(line)
		src := sb.String()

		toks, err := lexer.Tokenize(src)
		if !final && lexer.IsIncomplete(err) {
			continue
		}
		if err != nil {
			return src, nil, err
		}
		prog, err := s.parser.Parse(toks)
		if !final && parser.IsIncomplete(err) {
			continue
		}
		return src, prog, err
	}
}

func (s *session) command(cmd string) (quit bool) {
	switch cmd {
	case ":quit", ":exit", ":q":
		return true
	case ":help":
		fmt.Fprintln(s.stdout, replHelp)
	case ":env":
		env := s.it.Env()
		for _, name := range env.Names() {
			v, _ := env.Get(name)
			fmt.Fprintf(s.stdout, "%v = %v\n", name, interp.Repr(v))
		}
	case ":funcs":
		fmt.Fprintln(s.stdout, strings.Join(s.parser.Funcs(), " "))
	default:
		fmt.Fprintf(s.stdout, "unknown command %v; try :help\n", cmd)
	}
	return false
}

func (s *session) eval(ctx context.Context, prog *ast.Program) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.it.Run(ctx, prog); err != nil {
		s.log.Printf("ERROR", "%v", err)
		return
	}
	if n := len(prog.Body); n > 0 && echoes(prog.Body[n-1]) {
		if v := s.it.Result(); v != nil {
			fmt.Fprintln(s.stdout, s.result.Render(interp.Repr(v)))
		}
	}
}

// echoes reports whether the result of a top level statement is shown;
// statements whose effect is already visible, like print or assignment,
// are not echoed.
func echoes(stmt ast.Node) bool {
	switch stmt.(type) {
	case *ast.Print, *ast.Assign, *ast.Input,
		*ast.If, *ast.While, *ast.For, *ast.Func,
		*ast.IncDec, *ast.ArraySet, *ast.ArrayAdd:
		return false
	}
	return true
}

// promptReader feeds input() from the repl's line editor.
type promptReader struct {
	in  prompter
	buf []byte
}

func (pr *promptReader) Read(p []byte) (int, error) {
	if len(pr.buf) == 0 {
		line, err := pr.in.Prompt("")
		if err != nil {
			return 0, err
		}
		pr.buf = append(append(pr.buf[:0], line...), '\n')
	}
	n := copy(p, pr.buf)
	pr.buf = pr.buf[n:]
	return n, nil
}
