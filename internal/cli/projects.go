package cli

import (
	"kanbo/internal/board"
	"kanbo/internal/model"
	"kanbo/internal/store"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	var boardKey string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project card commands",
	}
	cmd.PersistentFlags().StringVar(&boardKey, "board", "", "Board id or name (default: current board)")

	cmd.AddCommand(newProjectsCreateCmd(app, &boardKey))
	cmd.AddCommand(newProjectsListCmd(app, &boardKey))
	cmd.AddCommand(newProjectsShowCmd(app, &boardKey))
	cmd.AddCommand(newProjectsUpdateCmd(app, &boardKey))
	cmd.AddCommand(newProjectsMoveCmd(app, &boardKey))
	cmd.AddCommand(newProjectsDeleteCmd(app, &boardKey))
	return cmd
}

func newProjectsCreateCmd(app *App, boardKey *string) *cobra.Command {
	var columnKey string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project card (name defaults to \"New Project\")",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, *boardKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := resolveColumn(b, columnKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			p := eng.CreateProject(b.ID, c.ID)
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&columnKey, "column", "", "Column id or title")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newProjectsListCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the board's projects in column order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, *boardKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([]map[string]any, 0)
			for ci := range b.Columns {
				c := &b.Columns[ci]
				for pi := range c.Projects {
					p := &c.Projects[pi]
					rows = append(rows, map[string]any{
						"id":          p.ID,
						"projectId":   p.ProjectID,
						"projectName": p.ProjectName,
						"column":      c.Title,
						"columnId":    c.ID,
						"links":       len(p.Links),
						"comments":    len(p.Comments),
					})
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data":  rows,
				"board": boardSummary(b),
			})
		},
	}
	return cmd
}

func newProjectsShowCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project card (accepts the WRK-001 style id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, *boardKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, p, perr := resolveProject(b, args[0])
			if perr != nil && *boardKey == "" {
				// Fall back to a store-wide search for direct lookups.
				if ab, ac, ap, ok := resolveProjectAnywhere(eng.DB(), args[0]); ok {
					b, c, p, perr = ab, ac, ap, nil
				}
			}
			if perr != nil {
				return writeErr(cmd, perr)
			}
			return writeOut(cmd, app, map[string]any{
				"data": p,
				"column": map[string]any{
					"id":    c.ID,
					"title": c.Title,
				},
				"board": boardSummary(b),
			})
		},
	}
	return cmd
}

func newProjectsUpdateCmd(app *App, boardKey *string) *cobra.Command {
	var name string
	var displayID string
	var description string

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update card fields (each changed field is logged)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, *boardKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, p, err := resolveProject(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			upd := board.ProjectUpdate{}
			if cmd.Flags().Changed("name") {
				upd.ProjectName = &name
			}
			if cmd.Flags().Changed("id") {
				upd.ProjectID = &displayID
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			eng.UpdateProject(b.ID, c.ID, p.ID, upd)
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&displayID, "id", "", "Display id (e.g. WRK-007)")
	cmd.Flags().StringVar(&description, "description", "", "Project description (markdown)")
	return cmd
}

func newProjectsMoveCmd(app *App, boardKey *string) *cobra.Command {
	var toColumn string
	var index int

	cmd := &cobra.Command{
		Use:   "move <project>",
		Short: "Move a card to another column (default: append at the end)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, *boardKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			from, p, err := resolveProject(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			to, err := resolveColumn(b, toColumn)
			if err != nil {
				return writeErr(cmd, err)
			}
			at := index
			if !cmd.Flags().Changed("index") {
				at = len(to.Projects)
			}
			// The move splices slices under p, so grab what we report first.
			displayID := p.ProjectID
			eng.MoveProject(b.ID, from.ID, to.ID, p.ID, at)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"projectId": displayID,
				"from":      from.Title,
				"to":        to.Title,
			}})
		},
	}

	cmd.Flags().StringVar(&toColumn, "to", "", "Destination column id or title")
	cmd.Flags().IntVar(&index, "index", 0, "Insert position in the destination column (0-based)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newProjectsDeleteCmd(app *App, boardKey *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, *boardKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, p, err := resolveProject(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng.SetConfirm(confirmOrPrompt(cmd, yes))
			if !eng.Confirm("Delete project " + p.ProjectID + "?") {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": false}})
			}
			eng.DeleteProject(b.ID, c.ID, p.ID)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

// resolveProjectAnywhere looks the key up across every board, for the
// direct `kanbo WRK-001` shortcut where the card may live off the
// current board.
func resolveProjectAnywhere(db *store.DB, key string) (*model.Board, *model.Column, *model.Project, bool) {
	for bi := range db.Boards {
		b := &db.Boards[bi]
		if c, p, err := resolveProject(b, key); err == nil {
			return b, c, p, true
		}
	}
	return nil, nil, nil, false
}
