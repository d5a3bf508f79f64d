package board

import (
	"testing"

	"kanbo/internal/model"
)

func TestAddLinkValidatesScheme(t *testing.T) {
	e, saver, notices := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)
	before := saver.saves

	for _, raw := range []string{
		"ftp://example.com/file",
		"javascript:alert(1)",
		"example.com",
		"   ",
	} {
		if l := e.AddLink(b.ID, col, p.ID, "bad", raw); l != nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
	if len(p.Links) != 0 {
		t.Fatalf("rejected links must not be stored")
	}
	if len(p.ActivityLog) != 1 {
		t.Fatalf("rejected links must not log; got %d entries", len(p.ActivityLog))
	}
	if saver.saves != before {
		t.Fatalf("rejected links must not write")
	}
	if len(*notices) != 4 {
		t.Fatalf("expected one notice per rejection; got %v", *notices)
	}
}

func TestAddLinkStoresAndLogs(t *testing.T) {
	e, _, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)

	l := e.AddLink(b.ID, col, p.ID, "Design doc", "https://example.com/doc")
	if l == nil {
		t.Fatalf("expected link")
	}
	if l.Title != "Design doc" || l.URL != "https://example.com/doc" {
		t.Fatalf("link got=%+v", l)
	}
	if l.ID == "" || l.Timestamp.IsZero() {
		t.Fatalf("link must carry id and timestamp: %+v", l)
	}

	a := p.ActivityLog[0]
	if a.Action != model.ActionLinkAdded {
		t.Fatalf("action got=%q want=%q", a.Action, model.ActionLinkAdded)
	}
	val, ok := a.NewValue.(model.LinkValue)
	if !ok {
		t.Fatalf("new value got=%T want LinkValue", a.NewValue)
	}
	if val.Title != "Design doc" || val.URL != "https://example.com/doc" {
		t.Fatalf("new value got=%+v", val)
	}
	if a.OldValue != nil {
		t.Fatalf("link_added old value must be null")
	}
}

func TestAddLinkDefaultsTitleToURL(t *testing.T) {
	e, _, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)

	l := e.AddLink(b.ID, col, p.ID, "", "http://example.com")
	if l.Title != "http://example.com" {
		t.Fatalf("title got=%q want the URL", l.Title)
	}
}

func TestUpdateLinkRecordsOldAndNew(t *testing.T) {
	e, _, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)
	l := e.AddLink(b.ID, col, p.ID, "Doc", "https://example.com/v1")
	created := l.Timestamp

	e.UpdateLink(b.ID, col, p.ID, l.ID, LinkUpdate{URL: strPtr("https://example.com/v2")})

	if l.URL != "https://example.com/v2" || l.Title != "Doc" {
		t.Fatalf("link got=%+v", l)
	}
	if !l.Timestamp.After(created) {
		t.Fatalf("edit must refresh the timestamp")
	}
	a := p.ActivityLog[0]
	if a.Action != model.ActionLinkUpdated {
		t.Fatalf("action got=%q want=%q", a.Action, model.ActionLinkUpdated)
	}
	old := a.OldValue.(model.LinkValue)
	upd := a.NewValue.(model.LinkValue)
	if old.URL != "https://example.com/v1" || upd.URL != "https://example.com/v2" {
		t.Fatalf("values got=%+v/%+v", old, upd)
	}
}

func TestUpdateLinkRejectsBadURL(t *testing.T) {
	e, _, notices := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)
	l := e.AddLink(b.ID, col, p.ID, "Doc", "https://example.com")
	entries := len(p.ActivityLog)

	e.UpdateLink(b.ID, col, p.ID, l.ID, LinkUpdate{URL: strPtr("ftp://example.com")})

	if l.URL != "https://example.com" {
		t.Fatalf("rejected update must not change the link; got %q", l.URL)
	}
	if len(p.ActivityLog) != entries {
		t.Fatalf("rejected update must not log")
	}
	if len(*notices) == 0 {
		t.Fatalf("expected a notice")
	}
}

func TestDeleteLinkLogsContent(t *testing.T) {
	e, _, _ := testEngine(t)
	b := e.CreateBoard("Work", "WRK", "")
	col := b.Columns[0].ID
	p := e.CreateProject(b.ID, col)
	l := e.AddLink(b.ID, col, p.ID, "Doc", "https://example.com")

	e.DeleteLink(b.ID, col, p.ID, l.ID)

	if len(p.Links) != 0 {
		t.Fatalf("expected link removed")
	}
	a := p.ActivityLog[0]
	if a.Action != model.ActionLinkDeleted {
		t.Fatalf("action got=%q want=%q", a.Action, model.ActionLinkDeleted)
	}
	old := a.OldValue.(model.LinkValue)
	if old.Title != "Doc" || old.URL != "https://example.com" {
		t.Fatalf("old value got=%+v", old)
	}
	if a.NewValue != nil {
		t.Fatalf("link_deleted new value must be null")
	}
}
