package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamp100307/Pluto/internal/config"
)

type plutoResult struct {
	code   int
	stdout string
	stderr string
}

func runPluto(t *testing.T, stdin string, args ...string) plutoResult {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvVar, "")
	var out, errOut bytes.Buffer
	code := newApp(strings.NewReader(stdin), &out, &errOut).execute(context.Background(), args)
	res := plutoResult{code, out.String(), errOut.String()}
	if t.Failed() {
		t.Logf("stderr: %v", res.stderr)
	}
	return res
}

func writeProgram(t *testing.T, name, src string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFile(t *testing.T) {
	path := writeProgram(t, "hello.pluto", `print(1 + 2 * 3) name = input("who? ") print("hi " + name)`)

	res := runPluto(t, "ann\n", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.Equal(t, "7\nwho? hi ann\n", res.stdout)

	res = runPluto(t, "bob\n", "run", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.Equal(t, "7\nwho? hi bob\n", res.stdout)
}

func TestRunFile_byteOrderMark(t *testing.T) {
	path := writeProgram(t, "bom.pluto", "\ufeffprint(\"ok\")")
	res := runPluto(t, "", "run", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.Equal(t, "ok\n", res.stdout)
}

func TestRunFile_lineEndings(t *testing.T) {
	path := writeProgram(t, "crlf.pluto", "x = 1\r\nprint(x)\rprint(\"a\r\nb\")\r\n")
	res := runPluto(t, "", "run", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.Equal(t, "1\na\nb\n", res.stdout)

	res = runPluto(t, "", "tokens", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.Contains(t, res.stdout, "2:1\tPRINT\n")
}

func TestRunFile_exitCodes(t *testing.T) {
	for _, tc := range []struct {
		name string
		file string
		src  string
		args []string
		code int
		err  string
	}{
		{name: "extension", file: "prog.txt", src: `print(1)`, code: exitUsage, err: "not a .pluto file"},
		{name: "lex", file: "lex.pluto", src: `x = @`, code: exitUsage, err: "1:5:"},
		{name: "parse", file: "parse.pluto", src: `print(1`, code: exitParse, err: "expected RPAREN, found end of input"},
		{name: "runtime", file: "runtime.pluto", src: `print(1) print(y)`, code: exitRuntime, err: "1:16: NameError: name 'y' is not defined"},
		{name: "step limit", file: "loop.pluto", src: `for(i = 0, i < 3) { }`, args: []string{"--step-limit", "50"}, code: exitRuntime, err: "StepLimitError"},
		{name: "max depth", file: "deep.pluto", src: `func f(n) { return(f(n)) } f(0)`, args: []string{"--max-depth", "10"}, code: exitRuntime, err: "RecursionError"},
		{name: "timeout", file: "spin.pluto", src: `while (true) { }`, args: []string{"--timeout", "20ms"}, code: exitRuntime, err: "interrupted"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeProgram(t, tc.file, tc.src)
			res := runPluto(t, "", append(append([]string{"run"}, tc.args...), path)...)
			assert.Equal(t, tc.code, res.code, "exit code")
			assert.Contains(t, res.stderr, tc.err)
			assert.Contains(t, res.stderr, path)
		})
	}
}

func TestRunFile_missing(t *testing.T) {
	res := runPluto(t, "", "run", filepath.Join(t.TempDir(), "none.pluto"))
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "none.pluto")
}

func TestRunFile_usage(t *testing.T) {
	res := runPluto(t, "", "run")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "accepts 1 arg(s)")
}

func TestRunFile_seed(t *testing.T) {
	path := writeProgram(t, "dice.pluto", `print(random(1, 1000000))`)
	a := runPluto(t, "", "--seed", "99", "run", path)
	b := runPluto(t, "", "--seed", "99", "run", path)
	assert.Equal(t, 0, a.code, "stderr: %v", a.stderr)
	assert.Equal(t, a.stdout, b.stdout)
}

func TestRunFile_debug(t *testing.T) {
	path := writeProgram(t, "debug.pluto", `x = 1`)
	res := runPluto(t, "", "--debug", "run", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.Contains(t, res.stderr, "1:1 ID(x)")
	assert.Contains(t, res.stderr, "Assign: x")
}

func TestRunFile_trace(t *testing.T) {
	path := writeProgram(t, "trace.pluto", `x = 1`)
	tracePath := filepath.Join(t.TempDir(), "trace.log")
	res := runPluto(t, "", "--trace-file", tracePath, "run", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)

	trace, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Equal(t, "TRACE: > 1:1 Assign\nTRACE: = x = 1\n", string(trace))

	res = runPluto(t, "", "--trace", "run", path)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "> 1:1 Assign")
}

func TestRunFile_config(t *testing.T) {
	cfgPath := writeProgram(t, "pluto.yaml", "step_limit: 20\n")
	path := writeProgram(t, "loop.pluto", `while (true) { }`)
	res := runPluto(t, "", "--config", cfgPath, "run", path)
	assert.Equal(t, exitRuntime, res.code)
	assert.Contains(t, res.stderr, "StepLimitError: exceeded 20 steps")

	res = runPluto(t, "", "--config", filepath.Join(t.TempDir(), "nope.toml"), "run", path)
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "failed to read config")
}

func TestTokensCommand(t *testing.T) {
	path := writeProgram(t, "toks.pluto", `x = "a"`)
	res := runPluto(t, "", "tokens", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.Equal(t, "1:1\tID(x)\n1:3\tOP(=)\n1:5\tSTRING(\"a\")\n", res.stdout)
}

func TestASTCommand(t *testing.T) {
	path := writeProgram(t, "tree.pluto", `x = 1`)
	res := runPluto(t, "", "ast", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.Equal(t, "Program\n  Assign: x\n    Number: 1\n", res.stdout)

	res = runPluto(t, "", "ast", "--dot", path)
	assert.Equal(t, 0, res.code, "stderr: %v", res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "digraph AST {"), "got %q", res.stdout)

	bad := writeProgram(t, "bad.pluto", `x = `)
	res = runPluto(t, "", "ast", bad)
	assert.Equal(t, exitParse, res.code)
}

func TestVersionCommand(t *testing.T) {
	res := runPluto(t, "", "version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "pluto v"+Version)
}

type scriptedPrompter struct {
	lines   []string
	prompts []string
	history []string
}

func (sp *scriptedPrompter) Prompt(prompt string) (string, error) {
	sp.prompts = append(sp.prompts, prompt)
	if len(sp.lines) == 0 {
		return "", io.EOF
	}
	line := sp.lines[0]
	sp.lines = sp.lines[1:]
	return line, nil
}

func (sp *scriptedPrompter) AppendHistory(item string) {
	sp.history = append(sp.history, item)
}

func TestSession(t *testing.T) {
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(""), &out, &errOut)
	a.cfg = config.Default()

	sp := &scriptedPrompter{lines: []string{
		`x = 2`,
		`func double(n) {`,
		`return(n * 2) }`,
		`double(x)`,
		``,
		`print("hi")`,
		`y = input("name? ")`,
		`bob`,
		`print(y)`,
		`print(nope)`,
		`:env`,
		`:funcs`,
		`z = `,
		``,
		`:quit`,
		`print("unreached")`,
	}}
	require.NoError(t, a.session(context.Background(), sp))

	assert.Equal(t, strings.Join([]string{
		"Pluto v" + Version + "  (:help for commands)",
		"4",
		"hi",
		"name? bob",
		"double = <function double>",
		"x = 2",
		"y = 'bob'",
		"double",
		"",
	}, "\n"), out.String())

	assert.Contains(t, errOut.String(), "NameError: name 'nope' is not defined")
	assert.Contains(t, errOut.String(), "expected expression, found end of input")
	assert.Contains(t, sp.prompts, promptCont)
	assert.Contains(t, sp.history, "func double(n) {\nreturn(n * 2) }")
	assert.Equal(t, []string{`print("unreached")`}, sp.lines)
}

func TestSession_eof(t *testing.T) {
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(""), &out, &errOut)
	a.cfg = config.Default()

	sp := &scriptedPrompter{lines: []string{`print(1)`, `if (true) {`}}
	require.NoError(t, a.session(context.Background(), sp))
	assert.Equal(t, "Pluto v"+Version+"  (:help for commands)\n1\n\n", out.String())
	assert.Empty(t, errOut.String())
}
