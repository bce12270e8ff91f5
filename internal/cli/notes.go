package cli

import (
	"bufio"
	"fmt"
	"strings"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/model"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Note commands",
	}
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesShowCmd(app))
	cmd.AddCommand(newNotesCreateCmd(app))
	cmd.AddCommand(newNotesEditCmd(app))
	cmd.AddCommand(newNotesDeleteCmd(app))
	cmd.AddCommand(newNotesPinCmd(app))
	cmd.AddCommand(newNotesColorCmd(app))
	cmd.AddCommand(newNotesShareCmd(app))
	cmd.AddCommand(newNotesUnshareCmd(app))
	return cmd
}

func newNotesListCmd(app *App) *cobra.Command {
	var search, color string
	var pinned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes (pinned first, newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			filters := map[string]string{}
			if search != "" {
				filters["search"] = search
			}
			if color != "" {
				filters["color"] = color
			}
			if pinned {
				filters["pinned"] = "true"
			}
			notes, err := c.Notes.List(cmd.Context(), filters)
			if err != nil {
				return writeErr(cmd, err)
			}
			model.SortNotes(notes)
			if app.Format == "table" {
				return writeOut(cmd, app, notes)
			}
			return writeOut(cmd, app, map[string]any{"data": notes})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by title/content substring")
	cmd.Flags().StringVar(&color, "color", "", "Filter by background color")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "Only pinned notes")
	return cmd
}

func newNotesShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			note, err := c.Notes.Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": note})
		},
	}
	return cmd
}

func newNotesCreateCmd(app *App) *cobra.Command {
	var title, content, color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			note, err := c.Notes.Create(cmd.Context(), title, content, color)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": note})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Note body (markdown)")
	cmd.Flags().StringVar(&color, "color", "", "Background color (hex)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesEditCmd(app *App) *cobra.Command {
	var title, content, color string

	cmd := &cobra.Command{
		Use:   "edit <note-id>",
		Short: "Edit a note (only the given fields change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var upd api.NoteUpdate
			if cmd.Flags().Changed("title") {
				if err := model.ValidateTitle(title); err != nil {
					return writeErr(cmd, err)
				}
				upd.Title = &title
			}
			if cmd.Flags().Changed("content") {
				upd.Content = &content
			}
			if cmd.Flags().Changed("color") {
				upd.BackgroundColor = &color
			}

			note, err := c.Notes.Update(cmd.Context(), id, upd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": note})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	cmd.Flags().StringVar(&color, "color", "", "New background color (hex)")
	return cmd
}

// confirm prompts on stderr and reads one line from stdin. Used by the delete
// commands so a scripted `--yes` skips the prompt.
func confirm(cmd *cobra.Command, what string) (bool, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Delete %q? [y/N] ", what)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false, err
	}
	ans := strings.ToLower(strings.TrimSpace(line))
	return ans == "y" || ans == "yes", nil
}

func newNotesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note (asks first unless --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if !yes {
				note, err := c.Notes.Get(cmd.Context(), id)
				if err != nil {
					return writeErr(cmd, err)
				}
				title := note.Title
				if title == "" {
					title = "Untitled Note"
				}
				ok, err := confirm(cmd, title)
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeOut(cmd, app, map[string]any{"data": map[string]bool{"deleted": false}})
				}
			}

			if err := c.Notes.Delete(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]bool{"deleted": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newNotesPinCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin <note-id>",
		Short: "Toggle a note's pinned flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			note, err := c.Notes.TogglePin(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": note})
		},
	}
	return cmd
}

func newNotesColorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color <note-id> <hex-color>",
		Short: "Set a note's background color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			note, err := c.Notes.SetColor(cmd.Context(), id, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": note})
		},
	}
	return cmd
}

func newNotesShareCmd(app *App) *cobra.Command {
	var expiresInDays int

	cmd := &cobra.Command{
		Use:   "share <note-id>",
		Short: "Create a public share link for a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			link, err := c.Notes.CreateShareLink(cmd.Context(), id, expiresInDays)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": link})
		},
	}

	cmd.Flags().IntVar(&expiresInDays, "expires-in-days", 0, "Expiry in days (0 = never)")
	return cmd
}

func newNotesUnshareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unshare <note-id>",
		Short: "Revoke a note's share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("note", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.Notes.RevokeShareLink(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]bool{"revoked": true}})
		},
	}
	return cmd
}
