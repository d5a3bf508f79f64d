// Package export implements the snapshot and CSV codecs: full-fidelity
// JSON snapshots that import back losslessly, and a flat CSV projection
// for spreadsheets.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"kanbo/internal/board"
	"kanbo/internal/model"
	"kanbo/internal/store"
)

var (
	// ErrNoBoards means there is nothing to export.
	ErrNoBoards = errors.New("no boards to export")
	// ErrInvalidSnapshot means the data has no boards array.
	ErrInvalidSnapshot = errors.New("snapshot has no boards array")
	// ErrDeclined means the user rejected replacing existing boards.
	ErrDeclined = errors.New("import declined")
)

// Snapshot is the JSON export envelope. Boards round-trip untouched;
// the remaining fields are metadata for humans and import summaries.
type Snapshot struct {
	Boards              []model.Board `json:"boards"`
	CurrentBoardID      string        `json:"currentBoardId"`
	ExportedAt          time.Time     `json:"exportedAt"`
	ExportedAtFormatted string        `json:"exportedAtFormatted"`
	Version             string        `json:"version"`
	BoardCount          int           `json:"boardCount"`
	ProjectCount        int           `json:"projectCount"`
}

// BuildSnapshot wraps the current tree in an export envelope.
func BuildSnapshot(db *store.DB, now time.Time) (*Snapshot, error) {
	if len(db.Boards) == 0 {
		return nil, ErrNoBoards
	}
	return &Snapshot{
		Boards:              db.Boards,
		CurrentBoardID:      db.CurrentBoardID,
		ExportedAt:          now,
		ExportedAtFormatted: now.Format("Jan 2, 2006 3:04 PM"),
		Version:             store.StateVersion,
		BoardCount:          len(db.Boards),
		ProjectCount:        db.ProjectCount(),
	}, nil
}

// WriteSnapshot writes the pretty-printed snapshot JSON.
func WriteSnapshot(w io.Writer, db *store.DB, now time.Time) error {
	snap, err := BuildSnapshot(db, now)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// snapshotIn is the parse shape. Boards distinguishes a missing field
// (nil) from an empty array; ProjectCount distinguishes absent from
// zero.
type snapshotIn struct {
	Boards         []model.Board `json:"boards"`
	CurrentBoardID string        `json:"currentBoardId"`
	ProjectCount   *int          `json:"projectCount"`
}

// ParseSnapshot decodes and validates snapshot data. Data whose boards
// field is missing or not an array is rejected; every other metadata
// field is optional. The returned counts come from the snapshot when it
// carries them and are recomputed otherwise.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var in snapshotIn
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if in.Boards == nil {
		return nil, ErrInvalidSnapshot
	}
	snap := &Snapshot{
		Boards:         in.Boards,
		CurrentBoardID: in.CurrentBoardID,
		BoardCount:     len(in.Boards),
	}
	if in.ProjectCount != nil {
		snap.ProjectCount = *in.ProjectCount
	} else {
		for i := range in.Boards {
			for j := range in.Boards[i].Columns {
				snap.ProjectCount += len(in.Boards[i].Columns[j].Projects)
			}
		}
	}
	return snap, nil
}

// Import parses snapshot data and replaces the engine's whole tree with
// it. When boards already exist, the engine's confirm capability
// decides; declining leaves the current state untouched.
func Import(e *board.Engine, data []byte) error {
	snap, err := ParseSnapshot(data)
	if err != nil {
		return err
	}
	if len(e.DB().Boards) > 0 {
		msg := fmt.Sprintf("Importing replaces your %d existing board(s) with %d board(s) and %d project(s). Continue?",
			len(e.DB().Boards), snap.BoardCount, snap.ProjectCount)
		if !e.Confirm(msg) {
			return ErrDeclined
		}
	}
	e.ReplaceAll(snap.Boards, snap.CurrentBoardID)
	return nil
}

// SnapshotFilename is the dated default name for a JSON export.
func SnapshotFilename(now time.Time) string {
	return "kanbo-export-" + now.Format("2006-01-02") + ".json"
}

// CSVFilename is the dated default name for a CSV export.
func CSVFilename(now time.Time) string {
	return "kanbo-export-" + now.Format("2006-01-02") + ".csv"
}
