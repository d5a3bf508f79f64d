package cli

import (
	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	var boardKey string

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Project comment commands",
	}
	cmd.PersistentFlags().StringVar(&boardKey, "board", "", "Board id or name (default: current board)")

	cmd.AddCommand(newCommentsAddCmd(app, &boardKey))
	cmd.AddCommand(newCommentsListCmd(app, &boardKey))
	cmd.AddCommand(newCommentsUpdateCmd(app, &boardKey))
	cmd.AddCommand(newCommentsDeleteCmd(app, &boardKey))
	return cmd
}

func newCommentsAddCmd(app *App, boardKey *string) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Add a comment to a project",
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
			cm := eng.AddComment(b.ID, c.ID, p.ID, body)
			return writeOut(cmd, app, map[string]any{"data": cm})
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Comment text")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newCommentsListCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "List a project's comments",
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
			_, p, err := resolveProject(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p.Comments})
		},
	}
	return cmd
}

func newCommentsUpdateCmd(app *App, boardKey *string) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "update <project> <comment-id>",
		Short: "Edit a comment",
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
			c, p, err := resolveProject(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng.UpdateComment(b.ID, c.ID, p.ID, args[1], body)
			return writeOut(cmd, app, map[string]any{"data": p.Comments})
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Comment text")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newCommentsDeleteCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project> <comment-id>",
		Short: "Remove a comment",
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
			c, p, err := resolveProject(b, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			eng.DeleteComment(b.ID, c.ID, p.ID, args[1])
			return writeOut(cmd, app, map[string]any{"data": p.Comments})
		},
	}
	return cmd
}
