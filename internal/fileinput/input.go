// Package fileinput reads lines sequentially from a queue of input streams.
package fileinput

import (
	"fmt"
	"io"

	"github.com/lamp100307/Pluto/internal/runeio"
)

// Location names a line within one of the queued inputs.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string {
	if loc.Name == "" {
		return fmt.Sprintf("line %v", loc.Line)
	}
	return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
}

// Input reads lines from each reader in Queue in turn, moving on to the
// next one when the current one is exhausted; a line never spans two
// readers. The location of the last line read is kept in Last for error
// reporting.
type Input struct {
	Queue []io.Reader
	Last  Location

	src  io.Reader
	rr   io.RuneReader
	scan Location
}

// ReadLine reads the next line, without its terminator, returning io.EOF
// only when no input remains at all.
func (in *Input) ReadLine() (string, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return "", io.EOF
		}
		line, err := runeio.ReadLine(in.rr)
		if err == io.EOF {
			in.closeIn()
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%v: %w", in.scan, err)
		}
		in.Last = in.scan
		in.scan.Line++
		return line, nil
	}
}

// Close closes the current and any remaining queued inputs that implement
// io.Closer.
func (in *Input) Close() (err error) {
	if in.rr != nil {
		err = in.closeIn()
	}
	for _, r := range in.Queue {
		if cl, ok := r.(io.Closer); ok {
			if cerr := cl.Close(); err == nil {
				err = cerr
			}
		}
	}
	in.Queue = nil
	return err
}

func (in *Input) closeIn() (err error) {
	if cl, ok := in.src.(io.Closer); ok {
		err = cl.Close()
	}
	in.src, in.rr = nil, nil
	return err
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	in.src = in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = runeio.NewReader(in.src)
	in.scan = Location{Name: nameOf(in.src), Line: 1}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
