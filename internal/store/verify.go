package store

import (
	"fmt"
	"net/url"
	"strings"
)

type IssueLevel string

const (
	IssueLevelError IssueLevel = "error"
	IssueLevelWarn  IssueLevel = "warn"
)

// Issue is one finding from a store verification pass.
type Issue struct {
	Level   IssueLevel `json:"level"`
	Code    string     `json:"code"`
	Message string     `json:"message"`

	BoardID  string `json:"boardId,omitempty"`
	EntityID string `json:"entityId,omitempty"`
}

type VerifyReport struct {
	Issues []Issue `json:"issues"`
}

func (r VerifyReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == IssueLevelError {
			return true
		}
	}
	return false
}

// Verify walks the whole tree and reports violated invariants: blank or
// duplicated ids, column order fields out of step with position, a
// current-board pointer at a missing board, and stored link URLs outside
// http/https. It never mutates.
func Verify(db *DB) VerifyReport {
	var issues []Issue
	add := func(level IssueLevel, code, msg, boardID, entityID string) {
		issues = append(issues, Issue{Level: level, Code: code, Message: msg, BoardID: boardID, EntityID: entityID})
	}

	if db == nil {
		return VerifyReport{Issues: []Issue{{Level: IssueLevelError, Code: "nil_db", Message: "no state loaded"}}}
	}

	if db.Version != StateVersion {
		add(IssueLevelWarn, "version_mismatch",
			fmt.Sprintf("state version %q, expected %q", db.Version, StateVersion), "", "")
	}

	seen := map[string]string{} // id -> where it was first seen
	claim := func(id, kind, boardID string) {
		if strings.TrimSpace(id) == "" {
			add(IssueLevelError, "empty_id", kind+" with empty id", boardID, "")
			return
		}
		if prev, ok := seen[id]; ok {
			add(IssueLevelError, "duplicate_id",
				fmt.Sprintf("id %q used by both %s and %s", id, prev, kind), boardID, id)
			return
		}
		seen[id] = kind
	}

	for bi := range db.Boards {
		b := &db.Boards[bi]
		claim(b.ID, "board", b.ID)

		for ci := range b.Columns {
			c := &b.Columns[ci]
			claim(c.ID, "column", b.ID)
			if c.Order != ci {
				add(IssueLevelError, "column_order",
					fmt.Sprintf("column %q has order %d at position %d", c.Title, c.Order, ci), b.ID, c.ID)
			}

			for pi := range c.Projects {
				p := &c.Projects[pi]
				claim(p.ID, "project", b.ID)

				for _, l := range p.Links {
					claim(l.ID, "link", b.ID)
					if !storedLinkURLOK(l.URL) {
						add(IssueLevelError, "invalid_link_url",
							fmt.Sprintf("link %q on %s is not an http(s) URL", l.URL, p.ProjectID), b.ID, l.ID)
					}
				}
				for _, cm := range p.Comments {
					claim(cm.ID, "comment", b.ID)
				}
				for _, a := range p.ActivityLog {
					claim(a.ID, "activity", b.ID)
				}
			}
		}
	}

	if db.CurrentBoardID != "" {
		if _, ok := db.FindBoard(db.CurrentBoardID); !ok {
			add(IssueLevelError, "current_board_missing",
				fmt.Sprintf("current board %q does not exist", db.CurrentBoardID), "", db.CurrentBoardID)
		}
	} else if len(db.Boards) > 0 {
		add(IssueLevelWarn, "current_board_unset", "boards exist but none is current", "", "")
	}

	if issues == nil {
		issues = []Issue{}
	}
	return VerifyReport{Issues: issues}
}

// storedLinkURLOK mirrors the write-side gate; stored data should never
// fail it.
func storedLinkURLOK(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
