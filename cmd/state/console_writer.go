package state

import (
	"io"
	"sync"
)

// ConsoleWriter writes to the given writer, synchronized with the shared
// output mutex so log lines and command output don't interleave mid-line.
type ConsoleWriter struct {
	Mutex  *sync.Mutex
	Writer io.Writer
	IsTTY  bool
}

func (w *ConsoleWriter) Write(p []byte) (n int, err error) {
	origLen := len(p)

	w.Mutex.Lock()
	n, err = w.Writer.Write(p)
	w.Mutex.Unlock()

	if err != nil && n < origLen {
		return n, err
	}
	return origLen, nil
}
