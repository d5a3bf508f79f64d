package cli

import (
	"github.com/spf13/cobra"
)

func newColumnsCmd(app *App) *cobra.Command {
	var boardKey string

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Column commands",
	}
	cmd.PersistentFlags().StringVar(&boardKey, "board", "", "Board id or name (default: current board)")

	cmd.AddCommand(newColumnsAddCmd(app, &boardKey))
	cmd.AddCommand(newColumnsListCmd(app, &boardKey))
	cmd.AddCommand(newColumnsRenameCmd(app, &boardKey))
	cmd.AddCommand(newColumnsDeleteCmd(app, &boardKey))
	cmd.AddCommand(newColumnsReorderCmd(app, &boardKey))
	return cmd
}

func newColumnsAddCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a column to the board",
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
			c := eng.CreateColumn(b.ID, args[0])
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	return cmd
}

func newColumnsListCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the board's columns in order",
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
			rows := make([]map[string]any, 0, len(b.Columns))
			for i := range b.Columns {
				c := &b.Columns[i]
				rows = append(rows, map[string]any{
					"id":       c.ID,
					"title":    c.Title,
					"order":    c.Order,
					"projects": len(c.Projects),
				})
			}
			return writeOut(cmd, app, map[string]any{
				"data":  rows,
				"board": boardSummary(b),
			})
		},
	}
	return cmd
}

func newColumnsRenameCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <column> <new-title>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := resolveBoard(eng, *boardKey)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := resolveColumn(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng.RenameColumn(b.ID, c.ID, args[1])
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	return cmd
}

func newColumnsDeleteCmd(app *App, boardKey *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <column>",
		Short: "Delete a column and the projects in it",
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
			c, err := resolveColumn(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng.SetConfirm(confirmOrPrompt(cmd, yes))
			if !eng.Confirm("Delete column " + c.Title + " and its projects?") {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": false}})
			}
			eng.DeleteColumn(b.ID, c.ID)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newColumnsReorderCmd(app *App, boardKey *string) *cobra.Command {
	var from int
	var to int

	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Move a column from one position to another",
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
			eng.ReorderColumns(b.ID, from, to)
			rows := make([]map[string]any, 0, len(b.Columns))
			for i := range b.Columns {
				rows = append(rows, map[string]any{
					"id":    b.Columns[i].ID,
					"title": b.Columns[i].Title,
					"order": b.Columns[i].Order,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Current position (0-based)")
	cmd.Flags().IntVar(&to, "to", 0, "Target position after removal (0-based)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
