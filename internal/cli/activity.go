package cli

import (
	"kanbo/internal/model"

	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	var boardKey string
	var limit int

	cmd := &cobra.Command{
		Use:   "activity <project>",
		Short: "Show a project's activity log (newest first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, boardKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, p, err := resolveProject(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			out := p.ActivityLog
			if limit > 0 && limit < len(out) {
				out = out[:limit]
			}
			if out == nil {
				out = []model.Activity{}
			}
			return writeOut(cmd, app, map[string]any{
				"data":  out,
				"total": len(p.ActivityLog),
			})
		},
	}

	cmd.Flags().StringVar(&boardKey, "board", "", "Board id or name (default: current board)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries (0 = all)")
	return cmd
}
