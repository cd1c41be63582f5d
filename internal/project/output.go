package project

import (
	"bytes"
	"sync"
)

// LineWriter passes each complete line written to it, without the newline, to
// a callback. Output from child processes arrives in arbitrary chunks, and the
// live page wants whole lines.
type LineWriter struct {
	mu     sync.Mutex
	buf    []byte
	onLine func(line string)
}

func NewLineWriter(onLine func(line string)) *LineWriter {
	return &LineWriter{onLine: onLine}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimSuffix(w.buf[:i], []byte{'\r'}))
		w.buf = w.buf[i+1:]
		w.onLine(line)
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *LineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.buf) > 0 {
		line := string(w.buf)
		w.buf = w.buf[:0]
		w.onLine(line)
	}
}
