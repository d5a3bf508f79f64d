package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"kanbo/internal/model"
)

// StateVersion is written into every persisted blob and snapshot.
const StateVersion = "1.0"

// DB is the whole in-memory board tree. It is the single shared state
// container: operations receive it by reference and mutate it in place.
type DB struct {
	Version        string        `json:"version"`
	CurrentBoardID string        `json:"currentBoardId,omitempty"`
	Boards         []model.Board `json:"boards"`
}

// NewDB returns an empty store tree.
func NewDB() *DB {
	return &DB{Version: StateVersion, Boards: []model.Board{}}
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .kanbo directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".kanbo")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store directory: a .kanbo dir discovered from
// the working directory upward, else ~/.kanbo.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kanbo"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// Load reads the persisted state blob. A missing, unreadable, or
// schema-mismatched blob yields an empty store; Load fails only when the
// storage medium itself cannot be opened.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.loadSQLite(context.Background())
}

// Save persists the whole tree as a single JSON blob. Full-state
// overwrite, never incremental.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.saveSQLite(context.Background(), db)
}

func (db *DB) FindBoard(id string) (*model.Board, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Boards {
		if db.Boards[i].ID == id {
			return &db.Boards[i], true
		}
	}
	return nil, false
}

func (db *DB) FindColumn(boardID, columnID string) (*model.Column, bool) {
	b, ok := db.FindBoard(boardID)
	if !ok {
		return nil, false
	}
	columnID = strings.TrimSpace(columnID)
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return &b.Columns[i], true
		}
	}
	return nil, false
}

func (db *DB) FindProject(boardID, columnID, projectID string) (*model.Project, bool) {
	c, ok := db.FindColumn(boardID, columnID)
	if !ok {
		return nil, false
	}
	projectID = strings.TrimSpace(projectID)
	for i := range c.Projects {
		if c.Projects[i].ID == projectID {
			return &c.Projects[i], true
		}
	}
	return nil, false
}

// CurrentBoard resolves CurrentBoardID, falling back to the first board.
func (db *DB) CurrentBoard() (*model.Board, bool) {
	if b, ok := db.FindBoard(db.CurrentBoardID); ok {
		return b, true
	}
	if len(db.Boards) > 0 {
		return &db.Boards[0], true
	}
	return nil, false
}

// ProjectCount is the number of projects across all boards and columns.
func (db *DB) ProjectCount() int {
	n := 0
	for i := range db.Boards {
		for j := range db.Boards[i].Columns {
			n += len(db.Boards[i].Columns[j].Projects)
		}
	}
	return n
}
