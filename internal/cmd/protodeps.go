package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huanghao/mybin/cmd/state"
	"github.com/huanghao/mybin/errext"
	"github.com/huanghao/mybin/errext/exitcodes"
	"github.com/huanghao/mybin/internal/protodeps"
)

// newProtoExtractor is swapped out in tests, so the command can be exercised
// without a protoc binary.
var newProtoExtractor = func(_ *state.GlobalState) protodeps.Extractor {
	return &protodeps.CompilerExtractor{}
}

type cmdProtodeps struct {
	gs *state.GlobalState
}

func (c *cmdProtodeps) run(cmd *cobra.Command, args []string) error {
	entryPath, err := c.absolutize(args[0])
	if err != nil {
		return err
	}
	baseDir, err := c.absolutize(args[1])
	if err != nil {
		return err
	}
	targetDir, err := c.absolutize(args[2])
	if err != nil {
		return err
	}

	if !strings.HasPrefix(entryPath, baseDir+string(os.PathSeparator)) {
		return errext.WithExitCodeIfNone(
			fmt.Errorf("entry file %s is not inside base directory %s", entryPath, baseDir),
			exitcodes.UsageError,
		)
	}
	entryRel, err := filepath.Rel(baseDir, entryPath)
	if err != nil {
		return err
	}
	entryRel = filepath.ToSlash(entryRel)

	c.gs.Logger.WithField("entry", entryRel).Debug("Collecting proto dependencies")

	copied, err := protodeps.Collect(
		c.gs.Ctx, c.gs.FS, newProtoExtractor(c.gs), baseDir, entryRel, targetDir)
	if err != nil {
		if errors.Is(err, protodeps.ErrCompilerNotFound) {
			err = errext.WithHint(err, "install the protocol buffer compiler and make sure it is on your PATH")
			return errext.WithExitCodeIfNone(err, exitcodes.UsageError)
		}
		var cerr *protodeps.CompilerError
		if errors.As(err, &cerr) {
			return errext.WithExitCodeIfNone(err, exitcodes.UsageError)
		}
		return err
	}

	for _, relPath := range copied {
		printToStdout(c.gs, relPath+"\n")
	}
	if !c.gs.Flags.Quiet {
		c.gs.Logger.Infof("Copied %d proto files to %s", len(copied), targetDir)
	}
	return nil
}

// absolutize resolves p against the process working directory, since the
// protoc invocation and the copies need stable absolute paths.
func (c *cmdProtodeps) absolutize(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	cwd, err := c.gs.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, p), nil
}

func getCmdProtodeps(gs *state.GlobalState) *cobra.Command {
	c := &cmdProtodeps{gs: gs}

	exampleText := getExampleText(gs, `
  # Copy api/svc/user.proto and everything it imports into ./out
  {{.}} protodeps api/svc/user.proto ./api ./out`[1:])

	cmd := &cobra.Command{
		Use:   "protodeps <entry_proto> <base_dir> <target_dir>",
		Short: "Copy a proto file and its import closure",
		Long: `Compile an entry .proto file with protoc, compute the transitive closure
of its imports and copy exactly those files, with their directory layout
preserved, into the target directory.`,
		Example: exampleText,
		Args:    exactArgsWithMsg(3, "expected the entry proto file, the base directory and the target directory"),
		RunE:    c.run,
	}
	return cmd
}
