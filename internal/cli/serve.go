package cli

import (
	"fmt"

	"kanbo/internal/store"
	"kanbo/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only JSON API over the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if addr == "" {
				addr = app.config().ServeAddr
			}
			s := store.Store{Dir: dir}
			fmt.Fprintf(cmd.ErrOrStderr(), "kanbo: read-only API on http://%s (store: %s)\n", addr, dir)
			return web.New(s).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (default $KANBO_SERVE_ADDR or 127.0.0.1:8377)")
	return cmd
}
