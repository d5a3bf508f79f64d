package cli

import (
	"kanbo/internal/store"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show store location, health, and counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, s, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			db := eng.DB()

			data := map[string]any{
				"dir":              app.Dir,
				"storageAvailable": eng.Available(),
				"version":          db.Version,
				"boards":           len(db.Boards),
				"projects":         db.ProjectCount(),
				"currentBoardId":   db.CurrentBoardID,
			}
			if id, err := s.StoreID(); err == nil {
				data["storeId"] = id
			}
			if ts, ok := s.LastSaved(); ok {
				data["lastSaved"] = ts
			}
			if verify {
				report := store.Verify(db)
				data["issues"] = report.Issues
				data["healthy"] = !report.HasErrors()
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Run integrity checks over the whole tree")
	return cmd
}
