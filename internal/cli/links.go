package cli

import (
	"kanbo/internal/board"

	"github.com/spf13/cobra"
)

func newLinksCmd(app *App) *cobra.Command {
	var boardKey string

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Project link commands",
	}
	cmd.PersistentFlags().StringVar(&boardKey, "board", "", "Board id or name (default: current board)")

	cmd.AddCommand(newLinksAddCmd(app, &boardKey))
	cmd.AddCommand(newLinksListCmd(app, &boardKey))
	cmd.AddCommand(newLinksUpdateCmd(app, &boardKey))
	cmd.AddCommand(newLinksDeleteCmd(app, &boardKey))
	return cmd
}

func newLinksAddCmd(app *App, boardKey *string) *cobra.Command {
	var url string
	var title string

	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Attach an http(s) link to a project",
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
			l := eng.AddLink(b.ID, c.ID, p.ID, title, url)
			if l == nil {
				// The engine already explained why on stderr.
				return writeOut(cmd, app, map[string]any{"data": nil})
			}
			return writeOut(cmd, app, map[string]any{"data": l})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Link URL (http or https)")
	cmd.Flags().StringVar(&title, "title", "", "Link title (default: the URL)")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newLinksListCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <project>",
		Short: "List a project's links",
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
			return writeOut(cmd, app, map[string]any{"data": p.Links})
		},
	}
	return cmd
}

func newLinksUpdateCmd(app *App, boardKey *string) *cobra.Command {
	var url string
	var title string

	cmd := &cobra.Command{
		Use:   "update <project> <link-id>",
		Short: "Edit a link's title or URL",
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
			upd := board.LinkUpdate{}
			if cmd.Flags().Changed("title") {
				upd.Title = &title
			}
			if cmd.Flags().Changed("url") {
				upd.URL = &url
			}
			eng.UpdateLink(b.ID, c.ID, p.ID, args[1], upd)
			return writeOut(cmd, app, map[string]any{"data": p.Links})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Link URL (http or https)")
	cmd.Flags().StringVar(&title, "title", "", "Link title")
	return cmd
}

func newLinksDeleteCmd(app *App, boardKey *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project> <link-id>",
		Short: "Remove a link from a project",
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
			eng.DeleteLink(b.ID, c.ID, p.ID, args[1])
			return writeOut(cmd, app, map[string]any{"data": p.Links})
		},
	}
	return cmd
}
