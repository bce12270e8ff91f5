package cli

import (
	"fmt"
	"time"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/model"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksStatsCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksStatusCmd(app))
	cmd.AddCommand(newTasksPriorityCmd(app))
	cmd.AddCommand(newTasksPinCmd(app))
	cmd.AddCommand(newTasksColorCmd(app))
	cmd.AddCommand(newTasksShareCmd(app))
	cmd.AddCommand(newTasksUnshareCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var search, status, priority string
	var pinned bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (pinned first, newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !model.Status(status).Valid() {
				return writeErr(cmd, fmt.Errorf("invalid status: %q", status))
			}
			if priority != "" && !model.Priority(priority).Valid() {
				return writeErr(cmd, fmt.Errorf("invalid priority: %q", priority))
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			filters := map[string]string{}
			if search != "" {
				filters["search"] = search
			}
			if status != "" {
				filters["status"] = status
			}
			if priority != "" {
				filters["priority"] = priority
			}
			if pinned {
				filters["pinned"] = "true"
			}
			tasks, err := c.Tasks.List(cmd.Context(), filters)
			if err != nil {
				return writeErr(cmd, err)
			}
			model.SortTasks(tasks)
			if app.Format == "table" {
				return writeOut(cmd, app, tasks)
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by title/description substring")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending|in_progress|completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (low|medium|high)")
	cmd.Flags().BoolVar(&pinned, "pinned", false, "Only pinned tasks")
	return cmd
}

func newTasksStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-status task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			stats, err := c.Tasks.Stats(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.Format == "table" {
				return writeOut(cmd, app, stats)
			}
			return writeOut(cmd, app, map[string]any{"data": stats})
		},
	}
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := c.Tasks.Get(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
	return cmd
}

func parseDue(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD or RFC 3339)", raw)
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var title, description, status, priority, due, color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !model.Status(status).Valid() {
				return writeErr(cmd, fmt.Errorf("invalid status: %q", status))
			}
			if priority != "" && !model.Priority(priority).Valid() {
				return writeErr(cmd, fmt.Errorf("invalid priority: %q", priority))
			}
			dueAt, err := parseDue(due)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := c.Tasks.Create(cmd.Context(), api.TaskCreate{
				Title:           title,
				Description:     description,
				Status:          model.Status(status),
				Priority:        model.Priority(priority),
				DueDate:         dueAt,
				BackgroundColor: color,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default: pending)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (default: medium)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&color, "color", "", "Background color (hex)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var title, description, due, color string

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task (only the given fields change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var upd api.TaskUpdate
			if cmd.Flags().Changed("title") {
				if err := model.ValidateTitle(title); err != nil {
					return writeErr(cmd, err)
				}
				upd.Title = &title
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("due") {
				dueAt, err := parseDue(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				upd.DueDate = dueAt
			}
			if cmd.Flags().Changed("color") {
				upd.BackgroundColor = &color
			}

			task, err := c.Tasks.Update(cmd.Context(), id, upd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD or RFC 3339; empty clears)")
	cmd.Flags().StringVar(&color, "color", "", "New background color (hex)")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task (asks first unless --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if !yes {
				task, err := c.Tasks.Get(cmd.Context(), id)
				if err != nil {
					return writeErr(cmd, err)
				}
				title := task.Title
				if title == "" {
					title = "Untitled Task"
				}
				ok, err := confirm(cmd, title)
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeOut(cmd, app, map[string]any{"data": map[string]bool{"deleted": false}})
				}
			}

			if err := c.Tasks.Delete(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]bool{"deleted": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newTasksStatusCmd(app *App) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "status <task-id>",
		Short: "Advance a task's status (or set it with --set)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var next model.Status
			if set != "" {
				next = model.Status(set)
				if !next.Valid() {
					return writeErr(cmd, fmt.Errorf("invalid status: %q", set))
				}
			} else {
				// One click forward in the cycle; needs the current value.
				task, err := c.Tasks.Get(cmd.Context(), id)
				if err != nil {
					return writeErr(cmd, err)
				}
				next = task.Status.Next()
			}

			task, err := c.Tasks.Update(cmd.Context(), id, api.TaskUpdate{Status: &next})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "Target status (pending|in_progress|completed)")
	return cmd
}

func newTasksPriorityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priority <task-id> <low|medium|high>",
		Short: "Set a task's priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			p := model.Priority(args[1])
			if !p.Valid() {
				return writeErr(cmd, fmt.Errorf("invalid priority: %q", args[1]))
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := c.Tasks.Update(cmd.Context(), id, api.TaskUpdate{Priority: &p})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
	return cmd
}

func newTasksPinCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin <task-id>",
		Short: "Toggle a task's pinned flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := c.Tasks.TogglePin(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
	return cmd
}

func newTasksColorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color <task-id> <hex-color>",
		Short: "Set a task's background color",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := c.Tasks.SetColor(cmd.Context(), id, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
	return cmd
}

func newTasksShareCmd(app *App) *cobra.Command {
	var expiresInDays int

	cmd := &cobra.Command{
		Use:   "share <task-id>",
		Short: "Create a public share link for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			link, err := c.Tasks.CreateShareLink(cmd.Context(), id, expiresInDays)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": link})
		},
	}

	cmd.Flags().IntVar(&expiresInDays, "expires-in-days", 0, "Expiry in days (0 = never)")
	return cmd
}

func newTasksUnshareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unshare <task-id>",
		Short: "Revoke a task's share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.Tasks.RevokeShareLink(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]bool{"revoked": true}})
		},
	}
	return cmd
}
