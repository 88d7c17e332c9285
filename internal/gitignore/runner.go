package gitignore

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// A Runner executes git with the given args in dir (the process working
// directory when dir is empty) and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs git as a subprocess.
type ExecRunner struct {
	Logger logrus.FieldLogger
}

// Run executes `git args...` and returns its combined stdout/stderr. A
// non-zero exit turns into an error carrying the trailing output, so the
// user sees git's own diagnostic.
func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	if r.Logger != nil {
		r.Logger.WithField("dir", dir).Debugf("git %s", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

var _ Runner = ExecRunner{}
