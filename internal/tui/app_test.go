package tui

import (
	"strings"
	"testing"

	"kanbo/internal/board"
	"kanbo/internal/config"
	"kanbo/internal/drag"
	"kanbo/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) (appModel, *board.Engine) {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	eng := board.Open(s, board.Options{})
	eng.CreateBoard("Work", "wrk", "")

	m := newAppModel(eng, s, &config.Config{})
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return mAny.(appModel), eng
}

func press(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mAny, _ := m.Update(msg)
	next, ok := mAny.(appModel)
	if !ok {
		t.Fatalf("update returned %T", mAny)
	}
	return next
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGrabDropMovesCardToNextColumn(t *testing.T) {
	m, eng := newTestApp(t)
	b, _ := eng.DB().CurrentBoard()
	p := eng.CreateProject(b.ID, b.Columns[0].ID)

	m = press(t, m, keyRunes("g"))
	if m.dragCtl.Phase() != drag.DraggingProject {
		t.Fatalf("expected project drag after g, got %v", m.dragCtl.Phase())
	}
	m = press(t, m, keyRunes("l"))
	if got := m.dragCtl.HoverColumnID(); got != b.Columns[1].ID {
		t.Fatalf("expected hover on second column, got %q", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.dragCtl.Phase() != drag.Idle {
		t.Fatalf("drag still active after drop: %v", m.dragCtl.Phase())
	}
	if len(b.Columns[0].Projects) != 0 {
		t.Fatalf("card still in source column: %d", len(b.Columns[0].Projects))
	}
	if len(b.Columns[1].Projects) != 1 || b.Columns[1].Projects[0].ID != p.ID {
		t.Fatalf("card not in target column")
	}
	if m.sel.ProjectID != p.ID {
		t.Fatalf("selection did not follow dropped card: %q", m.sel.ProjectID)
	}
	moved := b.Columns[1].Projects[0]
	if len(moved.ActivityLog) == 0 || moved.ActivityLog[0].Action != "moved" {
		t.Fatalf("expected moved activity, got %+v", moved.ActivityLog)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m, eng := newTestApp(t)
	b, _ := eng.DB().CurrentBoard()
	eng.CreateProject(b.ID, b.Columns[0].ID)

	m = press(t, m, keyRunes("g"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.dragCtl.Phase() != drag.Idle {
		t.Fatalf("expected idle after esc, got %v", m.dragCtl.Phase())
	}
	if len(b.Columns[0].Projects) != 1 {
		t.Fatalf("cancel moved the card: %d projects in source", len(b.Columns[0].Projects))
	}
}

func TestColumnDragReorders(t *testing.T) {
	m, eng := newTestApp(t)
	b, _ := eng.DB().CurrentBoard()

	m = press(t, m, keyRunes("G"))
	if m.dragCtl.Phase() != drag.DraggingColumn {
		t.Fatalf("expected column drag after G, got %v", m.dragCtl.Phase())
	}
	m = press(t, m, keyRunes("l"))
	m = press(t, m, keyRunes("l"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	want := []string{"In Progress", "Done", "To Do"}
	for i, title := range want {
		if b.Columns[i].Title != title {
			t.Fatalf("column %d = %q, want %q", i, b.Columns[i].Title, title)
		}
		if b.Columns[i].Order != i {
			t.Fatalf("column %d order = %d", i, b.Columns[i].Order)
		}
	}
	if m.sel.Col != 2 {
		t.Fatalf("selection did not follow column: %d", m.sel.Col)
	}
}

func TestNewCardModalFlow(t *testing.T) {
	m, eng := newTestApp(t)
	b, _ := eng.DB().CurrentBoard()

	m = press(t, m, keyRunes("n"))
	if m.modal != modalNewProject {
		t.Fatalf("expected new card modal, got %v", m.modal)
	}
	m = press(t, m, keyRunes("Fix bug"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal != modalNone {
		t.Fatalf("modal still open: %v", m.modal)
	}
	if len(b.Columns[0].Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(b.Columns[0].Projects))
	}
	p := b.Columns[0].Projects[0]
	if p.ProjectName != "Fix bug" {
		t.Fatalf("name = %q", p.ProjectName)
	}
	if p.ProjectID != "WRK-001" {
		t.Fatalf("display id = %q", p.ProjectID)
	}
	if m.sel.ProjectID != p.ID {
		t.Fatalf("new card not selected")
	}
}

func TestRenameColumnPrefillsCurrentTitle(t *testing.T) {
	m, eng := newTestApp(t)
	b, _ := eng.DB().CurrentBoard()

	m = press(t, m, keyRunes("r"))
	if m.modal != modalRenameColumn {
		t.Fatalf("expected rename modal, got %v", m.modal)
	}
	if m.input.Value() != "To Do" {
		t.Fatalf("prefill = %q", m.input.Value())
	}
	m = press(t, m, keyRunes(" Today"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if b.Columns[0].Title != "To Do Today" {
		t.Fatalf("title = %q", b.Columns[0].Title)
	}
}

func TestDeleteCardConfirmDefaultsToCancel(t *testing.T) {
	m, eng := newTestApp(t)
	b, _ := eng.DB().CurrentBoard()
	eng.CreateProject(b.ID, b.Columns[0].ID)

	m = press(t, m, keyRunes("d"))
	if m.modal != modalConfirmDeleteProject {
		t.Fatalf("expected delete confirm, got %v", m.modal)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != modalNone {
		t.Fatalf("modal still open after enter")
	}
	if len(b.Columns[0].Projects) != 1 {
		t.Fatalf("enter on default focus deleted the card")
	}

	m = press(t, m, keyRunes("d"))
	m = press(t, m, keyRunes("y"))
	if len(b.Columns[0].Projects) != 0 {
		t.Fatalf("y did not delete the card")
	}
}

func TestDetailViewAndInvalidLinkNotice(t *testing.T) {
	m, eng := newTestApp(t)
	b, _ := eng.DB().CurrentBoard()
	p := eng.CreateProject(b.ID, b.Columns[0].ID)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewDetail {
		t.Fatalf("expected detail view, got %v", m.view)
	}
	out := m.View()
	if !strings.Contains(out, "WRK-001") || !strings.Contains(out, "New Project") {
		t.Fatalf("detail view missing card fields:\n%s", out)
	}

	m = press(t, m, keyRunes("L"))
	if m.modal != modalAddLink {
		t.Fatalf("expected link modal, got %v", m.modal)
	}
	m = press(t, m, keyRunes("ftp://files.example.com"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != modalAddLinkTitle {
		t.Fatalf("expected title step, got %v", m.modal)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal != modalNone {
		t.Fatalf("modal still open: %v", m.modal)
	}
	if !strings.Contains(m.notice, "Invalid link URL") {
		t.Fatalf("expected rejection notice, got %q", m.notice)
	}
	if got := len(p.Links); got != 0 {
		t.Fatalf("rejected link was stored: %d", got)
	}
}

func TestNewBoardTwoStepModal(t *testing.T) {
	m, eng := newTestApp(t)
	db := eng.DB()

	m = press(t, m, keyRunes("b"))
	if m.view != viewBoards {
		t.Fatalf("expected boards view, got %v", m.view)
	}
	if !strings.Contains(m.View(), "Work") {
		t.Fatalf("boards view missing board name:\n%s", m.View())
	}

	m = press(t, m, keyRunes("n"))
	m = press(t, m, keyRunes("Home"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != modalNewBoardPrefix {
		t.Fatalf("expected prefix step, got %v", m.modal)
	}
	m = press(t, m, keyRunes("hm"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.view != viewBoard {
		t.Fatalf("expected board view after create, got %v", m.view)
	}
	if len(db.Boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(db.Boards))
	}
	nb, ok := db.CurrentBoard()
	if !ok || nb.Name != "Home" || nb.ProjectIDPrefix != "HM" {
		t.Fatalf("new board not current: %+v", nb)
	}
}
