package board

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kanbo/internal/store"
)

type memSaver struct {
	saves int
	err   error
}

func (m *memSaver) Save(*store.DB) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	return nil
}

// testEngine returns an engine backed by an in-memory saver, a ticking
// clock, and a notice recorder.
func testEngine(t *testing.T) (*Engine, *memSaver, *[]string) {
	t.Helper()
	saver := &memSaver{}
	notices := &[]string{}
	base := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	tick := 0
	e := New(store.NewDB(), saver, Options{
		Notify: NotifierFunc(func(msg string) { *notices = append(*notices, msg) }),
		Now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	})
	return e, saver, notices
}

func strPtr(s string) *string { return &s }

func TestPersistFailureKeepsMutation(t *testing.T) {
	e, saver, notices := testEngine(t)
	saver.err = errors.New("quota exceeded")

	b := e.CreateBoard("Work", "wrk", "")
	if b == nil {
		t.Fatalf("expected board despite save failure")
	}
	if len(e.DB().Boards) != 1 {
		t.Fatalf("expected in-memory board to survive; got %d boards", len(e.DB().Boards))
	}
	if len(*notices) != 1 {
		t.Fatalf("expected one save-failure notice; got %v", *notices)
	}
}

func TestOpenUnavailableStorageDegrades(t *testing.T) {
	// Point the store below a regular file so the directory cannot be
	// created and the probe fails.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	s := store.Store{Dir: filepath.Join(blocker, "nested")}

	var notices []string
	e := Open(s, Options{
		Notify: NotifierFunc(func(msg string) { notices = append(notices, msg) }),
	})
	if e.Available() {
		t.Fatalf("expected degraded engine")
	}
	if len(notices) != 1 {
		t.Fatalf("expected one degradation notice; got %v", notices)
	}

	// Mutations keep working in memory and saves stay silent.
	e.CreateBoard("Work", "WRK", "")
	e.CreateBoard("Home", "HOM", "")
	if len(e.DB().Boards) != 2 {
		t.Fatalf("expected 2 in-memory boards; got %d", len(e.DB().Boards))
	}
	if len(notices) != 1 {
		t.Fatalf("degraded saves must not notify again; got %v", notices)
	}
}

func TestOpenRoundTripsThroughStore(t *testing.T) {
	s := store.Store{Dir: t.TempDir()}

	e := Open(s, Options{})
	if !e.Available() {
		t.Fatalf("expected available storage")
	}
	b := e.CreateBoard("Work", "wrk", "team board")
	e.CreateProject(b.ID, b.Columns[0].ID)

	e2 := Open(s, Options{})
	got, ok := e2.DB().FindBoard(b.ID)
	if !ok {
		t.Fatalf("expected board to survive reopen")
	}
	if got.ProjectIDPrefix != "WRK" {
		t.Fatalf("prefix got=%q want=%q", got.ProjectIDPrefix, "WRK")
	}
	if len(got.Columns[0].Projects) != 1 {
		t.Fatalf("expected project to survive reopen")
	}
	if e2.DB().CurrentBoardID != b.ID {
		t.Fatalf("current board got=%q want=%q", e2.DB().CurrentBoardID, b.ID)
	}
}

func TestConfirmWithoutCapabilityDeclines(t *testing.T) {
	e, _, _ := testEngine(t)
	if e.Confirm("replace everything?") {
		t.Fatalf("expected nil confirm to decline")
	}
	e.SetConfirm(func(string) bool { return true })
	if !e.Confirm("replace everything?") {
		t.Fatalf("expected injected confirm to accept")
	}
}

func TestLogActivityUnknownChainIsNoOp(t *testing.T) {
	e, saver, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	p := e.CreateProject(b.ID, b.Columns[0].ID)
	before := saver.saves

	e.LogActivity(b.ID, "col-nope", p.ID, "created", "ghost", nil, nil)
	e.LogActivity("board-nope", b.Columns[0].ID, p.ID, "created", "ghost", nil, nil)
	e.LogActivity(b.ID, b.Columns[0].ID, "proj-nope", "created", "ghost", nil, nil)

	if saver.saves != before {
		t.Fatalf("expected no writes for unresolved chains")
	}
	if len(p.ActivityLog) != 1 {
		t.Fatalf("expected only the created entry; got %d", len(p.ActivityLog))
	}
}
