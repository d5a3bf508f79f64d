package tui

import (
	"kanbo/internal/board"
)

// engineDragOps binds the drag controller to whichever board is
// current when a gesture completes.
type engineDragOps struct {
	eng *board.Engine
}

func (o engineDragOps) boardID() string {
	return o.eng.DB().CurrentBoardID
}

func (o engineDragOps) MoveProject(fromColumnID, toColumnID, projectID string, toIndex int) {
	o.eng.MoveProject(o.boardID(), fromColumnID, toColumnID, projectID, toIndex)
}

func (o engineDragOps) ReorderColumns(fromIndex, toIndex int) {
	o.eng.ReorderColumns(o.boardID(), fromIndex, toIndex)
}

func (o engineDragOps) ProjectCount(columnID string) int {
	return o.eng.ProjectCount(o.boardID(), columnID)
}
