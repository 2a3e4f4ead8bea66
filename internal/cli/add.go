package cli

import (
	"fmt"

	"github.com/idilsaglam/todoview/internal/session"
	"github.com/idilsaglam/todoview/internal/ui"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var title, date string
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a todo",
		Example: `  todoview add --title "Read book" --date 2024-03-15`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := a.ctrl.Loader().CreateOne(cmd.Context(), title, date)
			if err != nil {
				return classify(err, session.MsgCreateFailed)
			}
			if asJSON {
				return a.writeJSON(created)
			}
			ui.OK(a.stdout, fmt.Sprintf("added %q (#%d, created %s)",
				created.Title, created.ID, a.renderer.FormatDate(created.CreatedAt)))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&title, "title", "t", "", "task title")
	f.StringVarP(&date, "date", "d", "", "creation date, YYYY-MM-DD")
	f.BoolVar(&asJSON, "json", false, "print the created todo as JSON")
	return cmd
}
