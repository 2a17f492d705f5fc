// Command gen_expects writes the withRun*/expectRun* helpers used by the
// interpreter's run tests.
//
// Each runTestCase builder method named withX or expectX becomes a free
// function returning a func(runTestCase) runTestCase, so that table driven
// Pluto program tests can list expectations as values:
//
//	runTest("assign").withSource(`x = 4 print(x)`).apply(
//		expectRunOutput("4"),
//		expectRunVar("x", int64(4)),
//	)
//
// The result is piped through goimports before it is written.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

var (
	pkgName = flag.String("package", "interp", "package name of the generated file")
	timeout = flag.Duration("timeout", 5*time.Second, "give up after this long")
)

// builderMethod matches a runTestCase builder declaration, capturing its
// with/expect prefix, the rest of its name and its parameter list.
var builderMethod = regexp.MustCompile(`^func \(rt runTestCase\) (expect|with)(\w+)\((.+?)\) runTestCase`)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gen_expects: ")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: gen_expects [-package name] [run_test.go [run_expects_test.go]]\n\n"+
				"Reads runTestCase builder methods from the first file (default stdin) and\n"+
				"writes their withRun*/expectRun* wrappers to the second (default stdout).\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	src, dst, err := openFiles(flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := generate(ctx, src, dst); err != nil {
		log.Fatal(err)
	}
}

type source interface {
	io.ReadCloser
	Name() string
}

func openFiles(args []string) (src source, dst io.WriteCloser, err error) {
	src, dst = os.Stdin, os.Stdout
	if len(args) > 2 {
		return nil, nil, fmt.Errorf("too many arguments: %q", args[2:])
	}
	if len(args) > 0 {
		if src, err = os.Open(args[0]); err != nil {
			return nil, nil, err
		}
	}
	if len(args) > 1 {
		if dst, err = os.Create(args[1]); err != nil {
			src.Close()
			return nil, nil, err
		}
	}
	return src, dst, nil
}

// generate runs goimports on one side of a pipe while writing wrappers for
// the builder methods of src into the other.
func generate(ctx context.Context, src source, dst io.WriteCloser) error {
	eg, ctx := errgroup.WithContext(ctx)

	format := exec.CommandContext(ctx, "goimports")
	format.Stdout = dst
	format.Stderr = os.Stderr
	pipe, err := format.StdinPipe()
	if err != nil {
		return err
	}
	if err := format.Start(); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}

	eg.Go(func() error {
		defer dst.Close()
		if err := format.Wait(); err != nil {
			return fmt.Errorf("goimports: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		defer func() {
			if cerr := src.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := pipe.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return writeWrappers(ctx, src, pipe)
	})

	return eg.Wait()
}

func writeWrappers(ctx context.Context, src source, w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package %s\n\n// @generated from %s\n\n", *pkgName, src.Name())
	if args := flag.Args(); len(args) == 2 {
		fmt.Fprintf(&buf, "//go:generate go run ../scripts/gen_expects.go -- %s\n\n", strings.Join(args, " "))
	}

	sc := bufio.NewScanner(src)
	for sc.Scan() {
		if m := builderMethod.FindStringSubmatch(sc.Text()); m != nil {
			prefix, name, params := m[1], m[2], m[3]
			fmt.Fprintf(&buf, "func %sRun%s(%s) func(runTestCase) runTestCase {\n", prefix, name, params)
			fmt.Fprintf(&buf, "\treturn func(rt runTestCase) runTestCase {\n")
			fmt.Fprintf(&buf, "\t\treturn rt.%s%s(%s)\n", prefix, name, callArgs(params))
			fmt.Fprintf(&buf, "\t}\n}\n\n")
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(w); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// callArgs turns a parameter list like "name string, v Value" or
// "lines ...string" into the matching call arguments.
func callArgs(params string) string {
	var args []string
	for _, param := range strings.Split(params, ",") {
		fields := strings.Fields(param)
		arg := fields[0]
		if len(fields) > 1 && strings.HasPrefix(fields[1], "...") {
			arg += "..."
		}
		args = append(args, arg)
	}
	return strings.Join(args, ", ")
}
