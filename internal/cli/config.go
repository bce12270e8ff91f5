package cli

import (
	"notesflow-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Client configuration",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}
	return cmd
}

func newConfigSetCmd(app *App) *cobra.Command {
	var apiURL, outFormat, theme string
	var rollback bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update stored configuration fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIBaseURL = apiURL
			}
			if cmd.Flags().Changed("default-format") {
				cfg.Format = outFormat
			}
			if cmd.Flags().Changed("rollback-on-failure") {
				cfg.RollbackOnFailure = rollback
			}
			if cmd.Flags().Changed("theme") {
				if cfg.TUI == nil {
					cfg.TUI = &store.TUIConfig{}
				}
				cfg.TUI.Theme = theme
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "Backend base URL")
	cmd.Flags().StringVar(&outFormat, "default-format", "", "Default output format (json|table)")
	cmd.Flags().BoolVar(&rollback, "rollback-on-failure", false, "Revert optimistic edits when the server rejects them")
	cmd.Flags().StringVar(&theme, "theme", "", "TUI theme (dark|light)")
	return cmd
}
