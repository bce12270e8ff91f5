package cli

import (
	"fmt"

	"notesflow-cli/internal/model"

	"github.com/spf13/cobra"
)

func newShareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Shared item commands (no login required)",
	}
	cmd.AddCommand(newShareShowCmd(app))
	return cmd
}

func newShareShowCmd(app *App) *cobra.Command {
	var itemType string

	cmd := &cobra.Command{
		Use:   "show <share-token>",
		Short: "Show a publicly shared note or task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var item *model.SharedItem
			switch itemType {
			case "":
				item, err = c.Share.Get(cmd.Context(), args[0])
			case "note":
				item, err = c.Share.GetNote(cmd.Context(), args[0])
			case "task":
				item, err = c.Share.GetTask(cmd.Context(), args[0])
			default:
				return writeErr(cmd, fmt.Errorf("invalid type: %q (want note or task)", itemType))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": item})
		},
	}

	cmd.Flags().StringVar(&itemType, "type", "", "Narrow the lookup to note or task")
	return cmd
}
