package testutils

import (
	"testing"

	"github.com/sirupsen/logrus"
)

type testWriter struct{ tb testing.TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Logf("%s", p)
	return len(p), nil
}

// NewLogger returns a logger that writes its output to the test's log.
func NewLogger(tb testing.TB) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(testWriter{tb: tb})
	return l
}
