package cli

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"notesflow-cli/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Run the server-rendered HTML UI",
		Long: strings.TrimSpace(`
Run the NotesFlow web view from a local HTTP server.

Server-rendered HTML + CSS only (no JavaScript). The session lives in an
auth_token cookie; /dashboard and /profile require login and /login bounces
authenticated visitors back to the dashboard.
`),
		Example: strings.TrimSpace(`
# Serve on localhost
notesflow web --addr 127.0.0.1:3340
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			srv, err := web.NewServer(web.ServerConfig{Client: c})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", strings.TrimSpace(addr))
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"api":       c.BaseURL,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "NotesFlow web running at %s (api=%s)\n", url, c.BaseURL)
			return http.Serve(ln, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3340", "Bind address (host:port or :port)")
	return cmd
}
