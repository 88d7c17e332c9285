package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/huanghao/mybin/cmd/state"
	"github.com/huanghao/mybin/internal/pyimports"
)

type cmdImports struct {
	gs *state.GlobalState

	showLocal        bool
	topLevelOnly     bool
	includeGitignore bool
}

func (c *cmdImports) run(_ *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if !filepath.IsAbs(root) {
		cwd, err := c.gs.Getwd()
		if err != nil {
			return err
		}
		root = filepath.Join(cwd, root)
	}

	report, err := pyimports.Analyze(c.gs.FS, root, pyimports.Options{
		TopLevelOnly:     c.topLevelOnly,
		IncludeGitignore: c.includeGitignore,
	})
	if err != nil {
		return err
	}

	return report.Write(c.gs.Stdout, c.showLocal)
}

func getCmdImports(gs *state.GlobalState) *cobra.Command {
	c := &cmdImports{gs: gs}

	exampleText := getExampleText(gs, `
  # Summarize the imports of the project in the current directory
  {{.}} imports

  # Analyze another project, counting only top-level packages
  {{.}} imports --top-level-only ~/src/someproject`[1:])

	cmd := &cobra.Command{
		Use:   "imports [project_root]",
		Short: "Summarize the imports of a Python project",
		Long: `Scan every .py file of a project, collect the imported module names and
print them grouped into third-party, unknown and stdlib modules, most
frequent first. Files matched by the project's .gitignore are skipped.`,
		Example: exampleText,
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.run,
	}

	flags := cmd.Flags()
	flags.BoolVar(&c.showLocal, "show-local", false, "also print modules local to the project")
	flags.BoolVar(&c.topLevelOnly, "top-level-only", false, "count only the top-level package of dotted imports")
	flags.BoolVar(&c.includeGitignore, "include-gitignore", false, "also scan files excluded by .gitignore")

	return cmd
}
