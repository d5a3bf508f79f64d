package board

import (
	"strings"

	"kanbo/internal/model"
)

// Every new board starts with the same three columns.
var defaultColumnTitles = [...]string{"To Do", "In Progress", "Done"}

// CreateBoard adds a board seeded with the default columns, makes it the
// current board, and persists. The project id prefix is stored
// uppercased.
func (e *Engine) CreateBoard(name, prefix, description string) *model.Board {
	b := model.Board{
		ID:              e.ids.NextID(e.db, "board"),
		Name:            strings.TrimSpace(name),
		ProjectIDPrefix: strings.ToUpper(strings.TrimSpace(prefix)),
		Description:     strings.TrimSpace(description),
		Columns:         make([]model.Column, 0, len(defaultColumnTitles)),
	}
	for i, title := range defaultColumnTitles {
		b.Columns = append(b.Columns, model.Column{
			ID:       e.ids.NextID(e.db, "col"),
			Title:    title,
			Order:    i,
			Projects: []model.Project{},
		})
	}
	e.db.Boards = append(e.db.Boards, b)
	e.db.CurrentBoardID = b.ID
	e.persist()
	return &e.db.Boards[len(e.db.Boards)-1]
}

// BoardUpdate carries the fields UpdateBoard may change; nil means leave
// the field alone.
type BoardUpdate struct {
	Name            *string
	ProjectIDPrefix *string
	Description     *string
}

// UpdateBoard shallow-merges the given fields into the board. Unknown
// board ids are ignored.
func (e *Engine) UpdateBoard(boardID string, upd BoardUpdate) {
	b, ok := e.db.FindBoard(boardID)
	if !ok {
		return
	}
	if upd.Name != nil {
		b.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.ProjectIDPrefix != nil {
		b.ProjectIDPrefix = strings.ToUpper(strings.TrimSpace(*upd.ProjectIDPrefix))
	}
	if upd.Description != nil {
		b.Description = strings.TrimSpace(*upd.Description)
	}
	e.persist()
}

// DeleteBoard removes the board and everything under it. When the
// current board is deleted, currency falls back to the first remaining
// board, or to nothing.
func (e *Engine) DeleteBoard(boardID string) {
	boardID = strings.TrimSpace(boardID)
	idx := -1
	for i := range e.db.Boards {
		if e.db.Boards[i].ID == boardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	e.db.Boards = append(e.db.Boards[:idx], e.db.Boards[idx+1:]...)
	if e.db.CurrentBoardID == boardID {
		if len(e.db.Boards) > 0 {
			e.db.CurrentBoardID = e.db.Boards[0].ID
		} else {
			e.db.CurrentBoardID = ""
		}
	}
	e.persist()
}

// UseBoard makes the board current. Unknown ids are ignored.
func (e *Engine) UseBoard(boardID string) {
	b, ok := e.db.FindBoard(boardID)
	if !ok {
		return
	}
	e.db.CurrentBoardID = b.ID
	e.persist()
}

// ReplaceAll wholesale-replaces the tree, the import path's final step.
// Callers settle confirmation first; this just swaps state and persists.
// A currentBoardID that no longer resolves falls back to the first
// board.
func (e *Engine) ReplaceAll(boards []model.Board, currentBoardID string) {
	if boards == nil {
		boards = []model.Board{}
	}
	e.db.Boards = boards
	e.db.CurrentBoardID = ""
	if _, ok := e.db.FindBoard(currentBoardID); ok {
		e.db.CurrentBoardID = strings.TrimSpace(currentBoardID)
	} else if len(e.db.Boards) > 0 {
		e.db.CurrentBoardID = e.db.Boards[0].ID
	}
	e.persist()
}
