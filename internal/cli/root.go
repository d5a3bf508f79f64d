package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"kanbo/internal/board"
	"kanbo/internal/config"
	"kanbo/internal/format"
	"kanbo/internal/model"
	"kanbo/internal/store"
	"kanbo/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanbo",
		Short:        "Kanban boards in your terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board TUI
  kanbo

  # Scriptable commands
  kanbo boards create --name "Work" --prefix WRK
  kanbo projects create --column "To Do"

  # Direct card lookup (shortcut for: kanbo projects show <project-id>)
  kanbo WRK-001
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("KANBO_DIR", ""), "Path to store dir (default: discovered .kanbo dir or ~/.kanbo)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newLinksCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newActivityCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	cfg := app.config()
	eng, s, err := loadEngine(app, nil)
	if err != nil {
		return err
	}
	return tui.Run(eng, s, cfg)
}

func (app *App) config() *config.Config {
	if app.cfg == nil {
		app.cfg = config.Load()
	}
	return app.cfg
}

func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	if d := app.config().Dir; d != "" {
		app.Dir = d
		return d, nil
	}
	d, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

// loadEngine opens the store and wires notices to stderr. cmd may be
// nil (TUI path), in which case notices go to the process stderr until
// the TUI installs its own sink.
func loadEngine(app *App, cmd *cobra.Command) (*board.Engine, store.Store, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	s := store.Store{Dir: dir}
	errOut := os.Stderr
	var notify board.Notifier = board.NotifierFunc(func(msg string) {
		fmt.Fprintln(errOut, msg)
	})
	if cmd != nil {
		notify = board.NotifierFunc(func(msg string) {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		})
	}
	eng := board.Open(s, board.Options{Notify: notify})
	return eng, s, nil
}

// resolveBoard picks the board a command operates on: an explicit
// --board value (id or name) or the current board.
func resolveBoard(eng *board.Engine, flag string) (*model.Board, error) {
	db := eng.DB()
	flag = strings.TrimSpace(flag)
	if flag != "" {
		if b, ok := db.FindBoard(flag); ok {
			return b, nil
		}
		for i := range db.Boards {
			if strings.EqualFold(db.Boards[i].Name, flag) {
				return &db.Boards[i], nil
			}
		}
		return nil, errNotFound("board", flag)
	}
	b, ok := db.CurrentBoard()
	if !ok {
		return nil, errors.New("no boards yet; run `kanbo boards create --name ...`")
	}
	return b, nil
}

// resolveColumn accepts a column id or a title (case-insensitive).
func resolveColumn(b *model.Board, key string) (*model.Column, error) {
	key = strings.TrimSpace(key)
	for i := range b.Columns {
		if b.Columns[i].ID == key {
			return &b.Columns[i], nil
		}
	}
	for i := range b.Columns {
		if strings.EqualFold(b.Columns[i].Title, key) {
			return &b.Columns[i], nil
		}
	}
	return nil, errNotFound("column", key)
}

// resolveProject accepts an internal id or a display id (WRK-001,
// case-insensitive) and reports which column holds the card.
func resolveProject(b *model.Board, key string) (*model.Column, *model.Project, error) {
	key = strings.TrimSpace(key)
	for ci := range b.Columns {
		c := &b.Columns[ci]
		for pi := range c.Projects {
			if c.Projects[pi].ID == key {
				return c, &c.Projects[pi], nil
			}
		}
	}
	for ci := range b.Columns {
		c := &b.Columns[ci]
		for pi := range c.Projects {
			if strings.EqualFold(c.Projects[pi].ProjectID, key) {
				return c, &c.Projects[pi], nil
			}
		}
	}
	return nil, nil, errNotFound("project", key)
}

// confirmOrPrompt wires the engine's confirm capability: --yes answers
// everything, otherwise the user is asked on the terminal.
func confirmOrPrompt(cmd *cobra.Command, yes bool) board.ConfirmFunc {
	if yes {
		return func(string) bool { return true }
	}
	return func(message string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", message)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		line = strings.ToLower(strings.TrimSpace(line))
		return line == "y" || line == "yes"
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
