package cli

import (
	"fmt"

	"github.com/idilsaglam/todoview/internal/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive todo browser (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runBrowse,
	}
}

func (a *app) runBrowse(cmd *cobra.Command, _ []string) error {
	if err := tui.Run(cmd.Context(), a.ctrl, a.renderer); err != nil {
		return failureError(fmt.Errorf("run browser: %w", err))
	}
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the todoview version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "todoview %s\n", Version)
		},
	}
}
