package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/huanghao/mybin/cmd/state"
	"github.com/huanghao/mybin/errext"
	"github.com/huanghao/mybin/errext/exitcodes"
	"github.com/huanghao/mybin/internal/gitignore"
	"github.com/huanghao/mybin/internal/lib/fsext"
)

// newGitRunner is swapped out in tests, so the commands can be exercised
// without a git binary.
var newGitRunner = func(gs *state.GlobalState) gitignore.Runner {
	return gitignore.ExecRunner{Logger: gs.Logger}
}

type cmdGitignore struct {
	gs *state.GlobalState

	cacheDir string
}

func (c *cmdGitignore) store() (*gitignore.Store, error) {
	dir := c.cacheDir
	if dir == "" {
		home, err := c.gs.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not locate the home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "gitignore")
	}
	store := &gitignore.Store{
		FS:     c.gs.FS,
		Git:    newGitRunner(c.gs),
		Remote: gitignore.DefaultRemote,
		Dir:    dir,
	}
	if err := store.Ensure(c.gs.Ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (c *cmdGitignore) runUpdate(_ *cobra.Command, _ []string) error {
	store, err := c.store()
	if err != nil {
		return err
	}
	return store.Update(c.gs.Ctx)
}

func (c *cmdGitignore) runList(_ *cobra.Command, _ []string) error {
	store, err := c.store()
	if err != nil {
		return err
	}
	names, err := store.List()
	if err != nil {
		return err
	}
	printToStdout(c.gs, strings.Join(names, "\n")+"\n")
	return nil
}

func (c *cmdGitignore) runRepo(_ *cobra.Command, _ []string) error {
	store, err := c.store()
	if err != nil {
		return err
	}
	printToStdout(c.gs, store.Remote+"\n")
	ts, err := store.LastUpdate(c.gs.Ctx)
	if err != nil {
		c.gs.Logger.WithError(err).Warn("Failed to get repo last update")
		return nil
	}
	printToStdout(c.gs, fmt.Sprintf("Last update: %s (%s)\n",
		ts.Format("2006-01-02T15:04:05Z07:00"), humanize.Time(ts)))
	return nil
}

func (c *cmdGitignore) runGet(_ *cobra.Command, args []string) error {
	store, err := c.store()
	if err != nil {
		return err
	}
	return c.printTemplates(store, args)
}

func (c *cmdGitignore) printTemplates(store *gitignore.Store, languages []string) error {
	banner := strings.Repeat("#", 10)
	for _, lang := range languages {
		contents, err := store.Template(lang)
		if err != nil {
			fmt.Fprintf(c.gs.Stderr, "Unknown language %s\n", lang)
			continue
		}
		printToStdout(c.gs, fmt.Sprintf("%s %s START %s\n", banner, lang, banner))
		printToStdout(c.gs, contents)
		if !strings.HasSuffix(contents, "\n") {
			printToStdout(c.gs, "\n")
		}
		printToStdout(c.gs, fmt.Sprintf("%s %s END %s\n", banner, lang, banner))
	}
	return nil
}

func (c *cmdGitignore) runInit(cmd *cobra.Command, args []string) error {
	store, err := c.store()
	if err != nil {
		return err
	}

	cwd, err := c.gs.Getwd()
	if err != nil {
		return err
	}
	git := newGitRunner(c.gs)
	if !gitignore.IsWorkTree(c.gs.Ctx, git, cwd) {
		if !c.confirm("Current directory is not a git repo. Run git init? (yes/no): ") {
			return errext.WithExitCodeIfNone(
				errors.New("canceled: git init not confirmed"), exitcodes.GenericError)
		}
		if err := gitignore.InitRepo(c.gs.Ctx, git, cwd); err != nil {
			return err
		}
	}

	target := filepath.Join(cwd, ".gitignore")
	if !fsext.Exists(c.gs.FS, target) {
		if err := afero.WriteFile(c.gs.FS, target, nil, 0o644); err != nil {
			return fmt.Errorf("could not create %s: %w", target, err)
		}
	}

	return c.printTemplates(store, args)
}

func (c *cmdGitignore) confirm(prompt string) bool {
	printToStdout(c.gs, prompt)
	scanner := bufio.NewScanner(c.gs.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "yes" || answer == "y"
}

func getCmdGitignore(gs *state.GlobalState) *cobra.Command {
	c := &cmdGitignore{gs: gs}

	exampleText := getExampleText(gs, `
  # Refresh the local template cache
  {{.}} gitignore update

  # Print templates, with or without the explicit subcommand
  {{.}} gitignore get Python Global/macOS
  {{.}} gitignore Python Global/macOS

  # Start a repo in the current directory with a Python .gitignore
  {{.}} gitignore init Python`[1:])

	cmd := &cobra.Command{
		Use:     "gitignore",
		Short:   "Fetch and print .gitignore templates",
		Long:    `Fetch .gitignore templates from the github/gitignore repository through a local cache.`,
		Example: exampleText,
		// Bare language names without the "get" subcommand keep working,
		// e.g. `mybin gitignore Python`.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.runGet(cmd, args)
		},
	}

	cmd.PersistentFlags().StringVar(&c.cacheDir, "cache-dir", "",
		"template cache directory (default ~/.cache/gitignore)")
	must(cmd.MarkPersistentFlagDirname("cache-dir"))

	cmd.AddCommand(
		&cobra.Command{
			Use:   "update",
			Short: "Update the local template cache",
			Args:  cobra.NoArgs,
			RunE:  c.runUpdate,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all available templates",
			Args:  cobra.NoArgs,
			RunE:  c.runList,
		},
		&cobra.Command{
			Use:   "repo",
			Short: "Show the template repo URL and its age",
			Args:  cobra.NoArgs,
			RunE:  c.runRepo,
		},
		&cobra.Command{
			Use:   "get LANG...",
			Short: "Print one or more templates",
			Args:  cobra.MinimumNArgs(1),
			RunE:  c.runGet,
		},
		&cobra.Command{
			Use:   "init [LANG...]",
			Short: "Initialize a git repo and its .gitignore, then print templates",
			Args:  cobra.ArbitraryArgs,
			RunE:  c.runInit,
		},
	)

	return cmd
}
