// Package state contains the GlobalState and other state-keeping APIs for
// the mybin commands.
package state

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const defaultBinaryName = "mybin"

// GlobalState contains the GlobalFlags and accessors for most of the global
// process-external state like CLI arguments, env vars, standard input,
// output and error, etc. In practice, most of it is normally accessed
// through the `os` package, but we need to be able to mock it with
// in-memory implementations, so command behavior can be tested end to end.
type GlobalState struct {
	Ctx context.Context

	FS          afero.Fs
	Getwd       func() (string, error)
	UserHomeDir func() (string, error)
	BinaryName  string
	CmdArgs     []string
	Env         map[string]string

	DefaultFlags, Flags GlobalFlags

	OutMutex       *sync.Mutex
	Stdout, Stderr *ConsoleWriter
	Stdin          io.Reader

	OSExit       func(int)
	SignalNotify func(chan<- os.Signal, ...os.Signal)
	SignalStop   func(chan<- os.Signal)

	Logger         *logrus.Logger
	FallbackLogger logrus.FieldLogger
}

// NewGlobalState returns a new GlobalState with the given ctx.
//
// Ideally, this should be the only function in the whole codebase where we
// use global variables and functions from the os package. Everywhere else
// the respective properties of GlobalState should be used instead.
func NewGlobalState(ctx context.Context) *GlobalState {
	isDumbTerm := os.Getenv("TERM") == "dumb"
	stdoutTTY := !isDumbTerm && (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	stderrTTY := !isDumbTerm && (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	outMutex := &sync.Mutex{}
	stdout := &ConsoleWriter{
		Mutex:  outMutex,
		Writer: colorable.NewColorable(os.Stdout),
		IsTTY:  stdoutTTY,
	}
	stderr := &ConsoleWriter{
		Mutex:  outMutex,
		Writer: colorable.NewColorable(os.Stderr),
		IsTTY:  stderrTTY,
	}

	env := BuildEnvMap(os.Environ())
	defaultFlags := GetDefaultFlags()
	flags := getFlags(defaultFlags, env)

	binary := filepath.Base(os.Args[0])
	if binary == "" || binary == "." {
		binary = defaultBinaryName
	}

	logger := &logrus.Logger{
		Out: stderr,
		Formatter: &logrus.TextFormatter{
			ForceColors:   stderrTTY,
			DisableColors: flags.NoColor,
		},
		Hooks: make(logrus.LevelHooks),
		Level: logrus.InfoLevel,
	}

	return &GlobalState{
		Ctx:          ctx,
		FS:           afero.NewOsFs(),
		Getwd:        os.Getwd,
		UserHomeDir:  os.UserHomeDir,
		BinaryName:   binary,
		CmdArgs:      os.Args,
		Env:          env,
		DefaultFlags: defaultFlags,
		Flags:        flags,
		OutMutex:     outMutex,
		Stdout:       stdout,
		Stderr:       stderr,
		Stdin:        os.Stdin,
		OSExit:       os.Exit,
		SignalNotify: signal.Notify,
		SignalStop:   signal.Stop,
		Logger:       logger,
		FallbackLogger: &logrus.Logger{
			Out:       os.Stderr,
			Formatter: new(logrus.TextFormatter),
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
	}
}

// GlobalFlags contains global config values that apply for all mybin
// commands.
type GlobalFlags struct {
	Verbose   bool
	Quiet     bool
	NoColor   bool
	LogOutput string
	LogFormat string
}

// GetDefaultFlags returns the default global flags.
func GetDefaultFlags() GlobalFlags {
	return GlobalFlags{
		LogOutput: "stderr",
	}
}

func getFlags(defaultFlags GlobalFlags, env map[string]string) GlobalFlags {
	result := defaultFlags

	if val, ok := env["MYBIN_LOG_OUTPUT"]; ok && val != "" {
		result.LogOutput = val
	}
	if val, ok := env["MYBIN_LOG_FORMAT"]; ok && val != "" {
		result.LogFormat = val
	}
	// Support https://no-color.org/, even an empty value disables colors.
	if _, ok := env["NO_COLOR"]; ok {
		result.NoColor = true
	}
	if val, err := strconv.ParseBool(env["MYBIN_NO_COLOR"]); err == nil {
		result.NoColor = val
	}

	return result
}

// BuildEnvMap returns a map from os.Environ()-style key=value pairs.
func BuildEnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		env[k] = v
	}
	return env
}
