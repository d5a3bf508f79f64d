package board

import (
	"testing"

	"kanbo/internal/model"
)

func TestAddCommentStoresAndLogs(t *testing.T) {
	e, _, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)

	c := e.AddComment(b.ID, col, p.ID, "  needs a second pass  ")
	if c == nil {
		t.Fatalf("expected comment")
	}
	if c.Text != "needs a second pass" {
		t.Fatalf("text got=%q", c.Text)
	}
	a := p.ActivityLog[0]
	if a.Action != model.ActionCommentAdded {
		t.Fatalf("action got=%q want=%q", a.Action, model.ActionCommentAdded)
	}
	if a.NewValue != "needs a second pass" || a.OldValue != nil {
		t.Fatalf("values got=%v/%v", a.OldValue, a.NewValue)
	}
}

func TestAddCommentEmptyIgnored(t *testing.T) {
	e, saver, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)
	before := saver.saves

	if c := e.AddComment(b.ID, col, p.ID, "   "); c != nil {
		t.Fatalf("expected blank comment to be ignored")
	}
	if len(p.Comments) != 0 || saver.saves != before {
		t.Fatalf("blank comment must not store or write")
	}
}

func TestUpdateCommentRecordsOldAndNew(t *testing.T) {
	e, _, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)
	c := e.AddComment(b.ID, col, p.ID, "first draft")
	created := c.Timestamp

	e.UpdateComment(b.ID, col, p.ID, c.ID, "second draft")

	if c.Text != "second draft" {
		t.Fatalf("text got=%q", c.Text)
	}
	if !c.Timestamp.After(created) {
		t.Fatalf("edit must refresh the timestamp")
	}
	a := p.ActivityLog[0]
	if a.Action != model.ActionCommentUpdated {
		t.Fatalf("action got=%q want=%q", a.Action, model.ActionCommentUpdated)
	}
	if a.OldValue != "first draft" || a.NewValue != "second draft" {
		t.Fatalf("values got=%v/%v", a.OldValue, a.NewValue)
	}
}

func TestDeleteCommentLogsOldText(t *testing.T) {
	e, _, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)
	c := e.AddComment(b.ID, col, p.ID, "obsolete")

	e.DeleteComment(b.ID, col, p.ID, c.ID)

	if len(p.Comments) != 0 {
		t.Fatalf("expected comment removed")
	}
	a := p.ActivityLog[0]
	if a.Action != model.ActionCommentDeleted {
		t.Fatalf("action got=%q want=%q", a.Action, model.ActionCommentDeleted)
	}
	if a.OldValue != "obsolete" || a.NewValue != nil {
		t.Fatalf("values got=%v/%v", a.OldValue, a.NewValue)
	}
}

func TestCommentUnknownIDsIgnored(t *testing.T) {
	e, saver, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)
	c := e.AddComment(b.ID, col, p.ID, "keep me")
	before := saver.saves

	e.UpdateComment(b.ID, col, p.ID, "comment-nope", "x")
	e.DeleteComment(b.ID, col, "proj-nope", c.ID)

	if saver.saves != before {
		t.Fatalf("failed lookups must not write")
	}
	if len(p.Comments) != 1 || p.Comments[0].Text != "keep me" {
		t.Fatalf("comment must stay put")
	}
}
