package cli

import (
	"kanbo/internal/board"
	"kanbo/internal/model"

	"github.com/spf13/cobra"
)

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Board commands",
	}
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsShowCmd(app))
	cmd.AddCommand(newBoardsUpdateCmd(app))
	cmd.AddCommand(newBoardsDeleteCmd(app))
	cmd.AddCommand(newBoardsUseCmd(app))
	return cmd
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	var name string
	var prefix string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board (seeded with To Do / In Progress / Done)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if prefix == "" {
				prefix = "PROJ"
			}
			b := eng.CreateBoard(name, prefix, description)
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Project id prefix (default PROJ; stored uppercased)")
	cmd.Flags().StringVar(&description, "description", "", "Board description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			db := eng.DB()
			rows := make([]map[string]any, 0, len(db.Boards))
			for i := range db.Boards {
				b := &db.Boards[i]
				projects := 0
				for j := range b.Columns {
					projects += len(b.Columns[j].Projects)
				}
				rows = append(rows, map[string]any{
					"id":              b.ID,
					"name":            b.Name,
					"projectIdPrefix": b.ProjectIDPrefix,
					"columns":         len(b.Columns),
					"projects":        projects,
					"current":         b.ID == db.CurrentBoardID,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
	return cmd
}

func newBoardsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [board]",
		Short: "Show a board's full tree (default: current board)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			b, err := resolveBoard(eng, key)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}
	return cmd
}

func newBoardsUpdateCmd(app *App) *cobra.Command {
	var name string
	var prefix string
	var description string

	cmd := &cobra.Command{
		Use:   "update <board>",
		Short: "Update board fields (only the flags you pass change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			upd := board.BoardUpdate{}
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("prefix") {
				upd.ProjectIDPrefix = &prefix
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			eng.UpdateBoard(b.ID, upd)
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Project id prefix")
	cmd.Flags().StringVar(&description, "description", "", "Board description")
	return cmd
}

func newBoardsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <board>",
		Short: "Delete a board and everything on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng.SetConfirm(confirmOrPrompt(cmd, yes))
			if !eng.Confirm("Delete board " + b.Name + " and all its projects?") {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": false}})
			}
			eng.DeleteBoard(b.ID)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"deleted":        true,
				"currentBoardId": eng.DB().CurrentBoardID,
			}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newBoardsUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <board>",
		Short: "Make a board the current board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng.UseBoard(b.ID)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentBoardId": b.ID}})
		},
	}
	return cmd
}

// boardSummary is the compact shape list-style commands reuse.
func boardSummary(b *model.Board) map[string]any {
	return map[string]any{
		"id":              b.ID,
		"name":            b.Name,
		"projectIdPrefix": b.ProjectIDPrefix,
	}
}
