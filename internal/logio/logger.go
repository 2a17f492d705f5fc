// Package logio provides leveled line logging for the command line tools.
package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger writes "LEVEL: message" lines to an output stream, remembering the
// highest exit code reported through Failf so that a command can exit
// non-zero after logging its errors.
type Logger struct {
	// LevelStyle, when set, decorates the level tag of every line, e.g. with
	// terminal colors.
	LevelStyle func(level string) string

	mu       sync.Mutex
	out      io.WriteCloser
	line     bytes.Buffer
	exitCode int
	writeErr error
}

// SetOutput directs lines to out, closing any prior output.
func (log *Logger) SetOutput(out io.WriteCloser) {
	log.mu.Lock()
	defer log.mu.Unlock()
	if log.out != nil {
		log.keepErr(log.out.Close())
	}
	log.out = out
}

// Close closes the output stream, returning the first error met while
// writing or closing it. Lines logged afterwards are dropped.
func (log *Logger) Close() error {
	log.mu.Lock()
	defer log.mu.Unlock()
	if log.out != nil {
		log.keepErr(log.out.Close())
		log.out = nil
	}
	return log.writeErr
}

// ExitCode returns the highest code passed to Failf, or 1 if writing a
// line failed and nothing higher was reported.
func (log *Logger) ExitCode() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	if log.exitCode == 0 && log.writeErr != nil {
		return 1
	}
	return log.exitCode
}

// Leveledf returns a printf-style function logging at level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// Printf logs one line; an empty level writes the message bare.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf(level, mess, args...)
}

// Failf logs an ERROR line and retains code for ExitCode unless a higher
// one was already reported.
func (log *Logger) Failf(code int, mess string, args ...interface{}) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.printf("ERROR", mess, args...)
	if code > log.exitCode {
		log.exitCode = code
	}
}

// ErrorIf logs a non-nil err as a failure with exit code 1.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Failf(1, "%v", err)
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) {
	log.line.Reset()
	if level != "" {
		if log.LevelStyle != nil {
			level = log.LevelStyle(level)
		}
		log.line.WriteString(level)
		log.line.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.line, mess, args...)
	} else {
		log.line.WriteString(mess)
	}
	if b := log.line.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		log.line.WriteByte('\n')
	}
	if log.out != nil {
		_, err := log.line.WriteTo(log.out)
		log.keepErr(err)
	}
}

func (log *Logger) keepErr(err error) {
	if log.writeErr == nil {
		log.writeErr = err
	}
}

// NopCloser returns w with a no-op Close, for use as an output stream that
// the Logger must not close, like os.Stderr.
func NopCloser(w io.Writer) io.WriteCloser { return nopCloser{w} }

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
