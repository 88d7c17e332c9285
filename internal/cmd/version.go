package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/huanghao/mybin/cmd/state"
	"github.com/huanghao/mybin/internal/build"
)

func versionString() string {
	return fmt.Sprintf("%s (%s, %s/%s)",
		build.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func getCmdVersion(gs *state.GlobalState) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Long:  `Show the application version and exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := cmd.Root()
			root.SetArgs([]string{"--version"})
			_ = root.Execute()
			return nil
		},
	}
}
