package cli

import (
	"fmt"
	"os"
	"strings"

	"notesflow-cli/internal/api"
	"notesflow-cli/internal/format"
	"notesflow-cli/internal/session"
	"notesflow-cli/internal/store"
	"notesflow-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	BaseURL    string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "notesflow",
		Short:        "NotesFlow notes & tasks client (CLI + TUI + web)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  notesflow

  # Scriptable commands
  notesflow auth login --email you@example.com
  notesflow notes list --search groceries
  notesflow tasks stats

  # Open a share link someone sent you (shortcut for: notesflow share show <token>)
  notesflow Ab3dEf9h
`),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Config supplies the default output format when neither the flag
			// nor the environment set one.
			if !cmd.Root().PersistentFlags().Changed("format") && os.Getenv("NOTESFLOW_FORMAT") == "" {
				if cfg, err := store.LoadConfig(); err == nil && cfg.Format != "" {
					app.Format = cfg.Format
				}
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "api-url", envOr("NOTESFLOW_API_URL", ""), "Backend base URL (default: config apiBaseUrl, then "+api.DefaultBaseURL+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("NOTESFLOW_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newProfileCmd(app))
	cmd.AddCommand(newShareCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newWebCmd(app))

	return cmd
}

// newClient wires a session store (backed by the mirror file) into an API
// client. Resolution order for the base URL: --api-url/env, config file,
// built-in default.
func newClient(app *App) (*api.Client, error) {
	base := app.BaseURL
	if base == "" {
		if cfg, err := store.LoadConfig(); err == nil && cfg.APIBaseURL != "" {
			base = cfg.APIBaseURL
		}
	}

	mirror, err := store.SessionPath()
	if err != nil {
		return nil, err
	}
	sess := session.NewStore(mirror)

	c := api.New(base, sess)
	c.OnUnauthorized = func() {
		fmt.Fprintln(os.Stderr, "session expired; run `notesflow auth login`")
	}
	return c, nil
}

func runTUI(app *App) error {
	c, err := newClient(app)
	if err != nil {
		return err
	}
	return tui.Run(c)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
