// Package tests contains end-to-end tests that execute the real root
// command against an in-memory environment.
package tests

import (
	"bytes"
	"context"
	"io"
	"os"
	"runtime"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huanghao/mybin/cmd/state"
	"github.com/huanghao/mybin/internal/lib/testutils"
)

// GlobalTestState is a wrapper around GlobalState that routes every
// process-external interaction to in-memory fakes, so whole commands can be
// executed in tests.
type GlobalTestState struct {
	*state.GlobalState
	Cancel func()

	Stdout, Stderr *bytes.Buffer
	Stdin          *bytes.Buffer
	LoggerHook     *testutils.SimpleLogrusHook

	Cwd string

	ExpectedExitCode int
}

// NewGlobalTestState returns an initialized GlobalTestState, mocking all
// of the real external inputs and outputs.
func NewGlobalTestState(t testing.TB) *GlobalTestState {
	fs := afero.NewMemMapFs()
	cwd := "/test/"
	if runtime.GOOS == "windows" {
		cwd = "c:\\test\\"
	}
	require.NoError(t, fs.MkdirAll(cwd, 0o755))

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetOutput(io.Discard)

	hook := testutils.NewLogHook()
	logger.AddHook(hook)

	ts := &GlobalTestState{
		Cwd:              cwd,
		Stdout:           new(bytes.Buffer),
		Stderr:           new(bytes.Buffer),
		Stdin:            new(bytes.Buffer),
		LoggerHook:       hook,
		ExpectedExitCode: 0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	ts.Cancel = cancel
	t.Cleanup(cancel)

	osExitCalled := false
	defaultOSExitHandle := func(exitCode int) {
		cancel()
		osExitCalled = true
		assert.Equal(t, ts.ExpectedExitCode, exitCode)
	}

	t.Cleanup(func() {
		if ts.ExpectedExitCode > 0 {
			// Ensure that, if the expected exit code isn't zero, the command
			// actually failed and called os.Exit() with it.
			assert.Truef(t, osExitCalled, "expected exit code %d to be set", ts.ExpectedExitCode)
		}
	})

	outMutex := &sync.Mutex{}
	defaultFlags := state.GetDefaultFlags()

	ts.GlobalState = &state.GlobalState{
		Ctx:          ctx,
		FS:           fs,
		Getwd:        func() (string, error) { return ts.Cwd, nil },
		UserHomeDir:  func() (string, error) { return ts.Cwd, nil },
		BinaryName:   "mybin",
		CmdArgs:      []string{},
		Env:          map[string]string{},
		DefaultFlags: defaultFlags,
		Flags:        defaultFlags,
		OutMutex:     outMutex,
		Stdout: &state.ConsoleWriter{
			Mutex:  outMutex,
			Writer: ts.Stdout,
			IsTTY:  false,
		},
		Stderr: &state.ConsoleWriter{
			Mutex:  outMutex,
			Writer: ts.Stderr,
			IsTTY:  false,
		},
		Stdin:          ts.Stdin,
		OSExit:         defaultOSExitHandle,
		SignalNotify:   func(_ chan<- os.Signal, _ ...os.Signal) {},
		SignalStop:     func(_ chan<- os.Signal) {},
		Logger:         logger,
		FallbackLogger: testutils.NewLogger(t),
	}

	return ts
}
