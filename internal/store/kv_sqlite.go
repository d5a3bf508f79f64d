package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"kanbo/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	sqliteFileName = "board.sqlite"

	// The whole tree persists as one JSON document under a single key.
	stateKey = "board_state"
	probeKey = "__probe__"
)

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when the TUI and CLI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err := ensureMetaID(ctx, db, "store_id")
	return err
}

func ensureMetaID(ctx context.Context, db *sql.DB, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("empty meta key")
	}
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id := uuid.NewString()
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, key, id); err != nil {
		return "", err
	}
	return id, nil
}

// Probe reports whether the storage medium accepts writes. Intended to
// run once at startup: a trivial write+delete round trip.
func (s Store) Probe() bool {
	ctx := context.Background()
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false
	}
	defer db.Close()

	nowMs := time.Now().UTC().UnixMilli()
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO state(k, v, updated_at_unixms) VALUES(?, ?, ?)`, probeKey, "", nowMs); err != nil {
		return false
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM state WHERE k = ?`, probeKey); err != nil {
		return false
	}
	return true
}

// StoreID returns the stable identity of this store (a UUID minted on
// first open).
func (s Store) StoreID() (string, error) {
	ctx := context.Background()
	db, err := s.openSQLite(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close()
	return ensureMetaID(ctx, db, "store_id")
}

// wireState is the persisted blob shape.
type wireState struct {
	Boards         []model.Board `json:"boards"`
	CurrentBoardID string        `json:"currentBoardId"`
	LastSaved      time.Time     `json:"lastSaved"`
	Version        string        `json:"version"`
}

func (s Store) loadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT v FROM state WHERE k = ?`, stateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return NewDB(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeState(raw), nil
}

// decodeState parses a persisted blob. Anything that does not carry a
// boards array is treated as absent: corrupt local state must never keep
// the app from starting.
func decodeState(raw string) *DB {
	var w wireState
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return NewDB()
	}
	if w.Boards == nil {
		return NewDB()
	}
	out := &DB{
		Version:        strings.TrimSpace(w.Version),
		CurrentBoardID: strings.TrimSpace(w.CurrentBoardID),
		Boards:         w.Boards,
	}
	if out.Version == "" {
		out.Version = StateVersion
	}
	return out
}

func (s Store) saveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	boards := st.Boards
	if boards == nil {
		boards = []model.Board{}
	}
	raw, err := json.Marshal(wireState{
		Boards:         boards,
		CurrentBoardID: strings.TrimSpace(st.CurrentBoardID),
		LastSaved:      time.Now().UTC(),
		Version:        StateVersion,
	})
	if err != nil {
		return err
	}

	nowMs := time.Now().UTC().UnixMilli()
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO state(k, v, updated_at_unixms) VALUES(?, ?, ?)`, stateKey, string(raw), nowMs)
	return err
}

// LastSaved reports when the blob was last written, if ever.
func (s Store) LastSaved() (time.Time, bool) {
	ctx := context.Background()
	db, err := s.openSQLite(ctx)
	if err != nil {
		return time.Time{}, false
	}
	defer db.Close()

	var raw string
	if err := db.QueryRowContext(ctx, `SELECT v FROM state WHERE k = ?`, stateKey).Scan(&raw); err != nil {
		return time.Time{}, false
	}
	var w wireState
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return time.Time{}, false
	}
	if w.LastSaved.IsZero() {
		return time.Time{}, false
	}
	return w.LastSaved, true
}
