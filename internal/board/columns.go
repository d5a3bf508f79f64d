package board

import (
	"strings"

	"kanbo/internal/model"
)

// CreateColumn appends a column to the end of the board. Order is the
// append position; renumbering keeps the order == index invariant for
// every other operation.
func (e *Engine) CreateColumn(boardID, title string) *model.Column {
	b, ok := e.db.FindBoard(boardID)
	if !ok {
		return nil
	}
	c := model.Column{
		ID:       e.ids.NextID(e.db, "col"),
		Title:    strings.TrimSpace(title),
		Order:    len(b.Columns),
		Projects: []model.Project{},
	}
	b.Columns = append(b.Columns, c)
	e.persist()
	return &b.Columns[len(b.Columns)-1]
}

// RenameColumn sets the column title. Unknown ids are ignored.
func (e *Engine) RenameColumn(boardID, columnID, title string) {
	c, ok := e.db.FindColumn(boardID, columnID)
	if !ok {
		return
	}
	c.Title = strings.TrimSpace(title)
	e.persist()
}

// DeleteColumn removes the column together with all projects in it,
// then renumbers the remaining columns.
func (e *Engine) DeleteColumn(boardID, columnID string) {
	b, ok := e.db.FindBoard(boardID)
	if !ok {
		return
	}
	idx := columnIndex(b, columnID)
	if idx < 0 {
		return
	}
	b.Columns = append(b.Columns[:idx], b.Columns[idx+1:]...)
	renumberColumns(b)
	e.persist()
}

// ReorderColumns removes the column at fromIndex and reinserts it at
// toIndex. Removal happens first, so toIndex addresses the shortened
// slice, the same way a splice-based reorder behaves. Out-of-range
// indices are ignored.
func (e *Engine) ReorderColumns(boardID string, fromIndex, toIndex int) {
	b, ok := e.db.FindBoard(boardID)
	if !ok {
		return
	}
	n := len(b.Columns)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return
	}
	moved := b.Columns[fromIndex]
	rest := append(b.Columns[:fromIndex:fromIndex], b.Columns[fromIndex+1:]...)

	cols := make([]model.Column, 0, n)
	cols = append(cols, rest[:toIndex]...)
	cols = append(cols, moved)
	cols = append(cols, rest[toIndex:]...)
	b.Columns = cols

	renumberColumns(b)
	e.persist()
}

func renumberColumns(b *model.Board) {
	for i := range b.Columns {
		b.Columns[i].Order = i
	}
}

func columnIndex(b *model.Board, columnID string) int {
	columnID = strings.TrimSpace(columnID)
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return i
		}
	}
	return -1
}
