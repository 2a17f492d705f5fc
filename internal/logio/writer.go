package logio

import (
	"bytes"
	"sync"
)

// Writer turns written text into log records, one per line, through Logf.
// A trailing partial line is held back until it is completed or the Writer
// is closed.
type Writer struct {
	Logf func(mess string, args ...interface{})

	mu      sync.Mutex
	pending []byte
}

func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.pending = append(lw.pending, p...)
	for {
		line, rest, found := bytes.Cut(lw.pending, []byte{'\n'})
		if !found {
			break
		}
		lw.emit(line)
		lw.pending = rest
	}
	if len(lw.pending) == 0 {
		lw.pending = nil
	}
	return len(p), nil
}

// Close logs any partial line still held back.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.pending) > 0 {
		lw.emit(lw.pending)
		lw.pending = nil
	}
	return nil
}

func (lw *Writer) emit(line []byte) {
	lw.Logf("%s", bytes.TrimSuffix(line, []byte{'\r'}))
}
