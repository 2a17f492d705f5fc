package interp

import (
	"errors"
	"io"

	"github.com/lamp100307/Pluto/ast"
	"github.com/lamp100307/Pluto/internal/fileinput"
	"github.com/lamp100307/Pluto/internal/flushio"
)

type ioCore struct {
	in  fileinput.Input
	out flushio.WriteFlusher
}

// Close flushes pending output and closes any queued inputs that are
// closers.
func (ioc *ioCore) Close() (err error) {
	if ioc.out != nil {
		err = ioc.out.Flush()
	}
	if cerr := ioc.in.Close(); err == nil {
		err = cerr
	}
	return err
}

func (it *Interpreter) writeString(s string) {
	if _, err := io.WriteString(it.out, s); err != nil {
		it.halt(err)
	}
}

func (it *Interpreter) flush() {
	if err := it.out.Flush(); err != nil {
		it.halt(err)
	}
}

// readLine writes prompt, flushing all pending output first, then reads
// one line of input.
func (it *Interpreter) readLine(node ast.Node, prompt string) string {
	it.writeString(prompt)
	it.flush()
	line, err := it.in.ReadLine()
	if errors.Is(err, io.EOF) {
		it.fail(node, EOFError, "EOF when reading a line")
	} else if err != nil {
		it.halt(err)
	}
	it.logf(markValue, "input %v from %v", quote(line), it.in.Last)
	return line
}
