package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"kanbo/internal/export"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export boards to a file",
	}
	cmd.AddCommand(newExportJSONCmd(app))
	cmd.AddCommand(newExportCSVCmd(app))
	cmd.AddCommand(newExportMarkdownCmd(app))
	return cmd
}

func newExportJSONCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Write a full JSON snapshot (re-importable)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			db := eng.DB()
			now := time.Now().UTC()

			var buf bytes.Buffer
			if err := export.WriteSnapshot(&buf, db, now); err != nil {
				if errors.Is(err, export.ErrNoBoards) {
					fmt.Fprintln(cmd.ErrOrStderr(), "No boards to export yet.")
					return nil
				}
				return writeErr(cmd, err)
			}
			if out == "-" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			path := out
			if path == "" {
				path = export.SnapshotFilename(now)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"file":     path,
				"boards":   len(db.Boards),
				"projects": db.ProjectCount(),
			}})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", `Output path (default kanbo-export-<date>.json; "-" for stdout)`)
	return cmd
}

func newExportCSVCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write a flat CSV projection for spreadsheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			db := eng.DB()

			var buf bytes.Buffer
			if err := export.WriteCSV(&buf, db); err != nil {
				if errors.Is(err, export.ErrNoBoards) {
					fmt.Fprintln(cmd.ErrOrStderr(), "No boards to export yet.")
					return nil
				}
				return writeErr(cmd, err)
			}
			if out == "-" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			path := out
			if path == "" {
				path = export.CSVFilename(time.Now().UTC())
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"file":     path,
				"projects": db.ProjectCount(),
			}})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", `Output path (default kanbo-export-<date>.csv; "-" for stdout)`)
	return cmd
}

func newExportMarkdownCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Write a shareable Markdown rendering of every board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			db := eng.DB()
			now := time.Now().UTC()

			var buf bytes.Buffer
			if err := export.WriteMarkdown(&buf, db, now); err != nil {
				if errors.Is(err, export.ErrNoBoards) {
					fmt.Fprintln(cmd.ErrOrStderr(), "No boards to export yet.")
					return nil
				}
				return writeErr(cmd, err)
			}
			if out == "-" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			path := out
			if path == "" {
				path = export.MarkdownFilename(now)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"file":   path,
				"boards": len(db.Boards),
			}})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", `Output path (default kanbo-export-<date>.md; "-" for stdout)`)
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all boards with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, s, err := loadEngine(app, cmd)
			if err != nil {
				return writeErr(cmd, err)
			}

			var data []byte
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			// The import replaces everything, so keep a copy of the
			// state file it is about to overwrite.
			backup := ""
			if len(eng.DB().Boards) > 0 && eng.Available() {
				backup, _ = s.BackupState(time.Now().UTC())
			}

			eng.SetConfirm(confirmOrPrompt(cmd, yes))
			if err := export.Import(eng, data); err != nil {
				if errors.Is(err, export.ErrDeclined) {
					return writeOut(cmd, app, map[string]any{"data": map[string]any{"imported": false}})
				}
				return writeErr(cmd, err)
			}
			db := eng.DB()
			result := map[string]any{
				"imported":       true,
				"boards":         len(db.Boards),
				"projects":       db.ProjectCount(),
				"currentBoardId": db.CurrentBoardID,
			}
			if backup != "" {
				result["backup"] = backup
			}
			return writeOut(cmd, app, map[string]any{"data": result})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Replace existing boards without asking")
	return cmd
}
