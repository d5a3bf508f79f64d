// Package drag holds the interaction state machine behind card and
// column dragging. The controller interprets start/over/leave/drop/end
// events from any front end and turns a completed gesture into exactly
// one board operation; everything in between is visual affordance.
package drag

import "strings"

// Phase is the controller's current mode. At most one drag runs at a
// time.
type Phase int

const (
	Idle Phase = iota
	DraggingProject
	DraggingColumn
)

func (p Phase) String() string {
	switch p {
	case DraggingProject:
		return "dragging-project"
	case DraggingColumn:
		return "dragging-column"
	default:
		return "idle"
	}
}

// BoardOps is the slice of board behavior a completed gesture needs.
// Implementations bind the board id themselves.
type BoardOps interface {
	MoveProject(fromColumnID, toColumnID, projectID string, toIndex int)
	ReorderColumns(fromIndex, toIndex int)
	ProjectCount(columnID string) int
}

// Start describes what a drag gesture began on. A gesture that starts
// on a card is a project drag even though the card sits inside a
// column; the source kind settles which, never the position.
type Start struct {
	Kind SourceKind

	// Project drags.
	ProjectID string
	ColumnID  string

	// Column drags.
	ColumnIndex int
}

type SourceKind int

const (
	SourceProject SourceKind = iota
	SourceColumn
)

// Controller tracks one drag gesture from start to drop or cancel.
type Controller struct {
	ops BoardOps

	phase       Phase
	projectID   string
	colID       string
	columnIndex int

	hoverColumnID string
}

func New(ops BoardOps) *Controller {
	return &Controller{ops: ops}
}

// Phase exposes the current mode for rendering.
func (c *Controller) Phase() Phase { return c.phase }

// HoverColumnID is the column a project drag currently hovers, or ""
// outside a project drag.
func (c *Controller) HoverColumnID() string { return c.hoverColumnID }

// DraggingProject reports the dragged card during a project drag.
func (c *Controller) DraggingProject() (projectID string, ok bool) {
	if c.phase != DraggingProject {
		return "", false
	}
	return c.projectID, true
}

// DraggingColumn reports the source index during a column drag.
func (c *Controller) DraggingColumn() (fromIndex int, ok bool) {
	if c.phase != DraggingColumn {
		return 0, false
	}
	return c.columnIndex, true
}

// DragStart begins a gesture. Starting while another drag is active is
// not a reachable transition and is ignored.
func (c *Controller) DragStart(src Start) {
	if c.phase != Idle {
		return
	}
	switch src.Kind {
	case SourceProject:
		projectID := strings.TrimSpace(src.ProjectID)
		columnID := strings.TrimSpace(src.ColumnID)
		if projectID == "" || columnID == "" {
			return
		}
		c.phase = DraggingProject
		c.projectID = projectID
		c.colID = columnID
	case SourceColumn:
		if src.ColumnIndex < 0 {
			return
		}
		c.phase = DraggingColumn
		c.columnIndex = src.ColumnIndex
	}
}

// DragOver marks a column as the hovered target of a project drag.
// It never changes board state.
func (c *Controller) DragOver(columnID string) {
	if c.phase != DraggingProject {
		return
	}
	c.hoverColumnID = strings.TrimSpace(columnID)
}

// DragLeave clears the hover mark if it still points at columnID.
func (c *Controller) DragLeave(columnID string) {
	if c.hoverColumnID == strings.TrimSpace(columnID) {
		c.hoverColumnID = ""
	}
}

// Target addresses where a drop landed: a column id for project drags,
// a column index for column drags.
type Target struct {
	ColumnID    string
	ColumnIndex int
}

// Drop completes the gesture. A project dropped on a column lands at
// the end of that column, including a drop back on its own column. A
// column dropped on a different position reorders; dropping on its own
// position does nothing. A drop with no active drag is ignored.
func (c *Controller) Drop(t Target) {
	switch c.phase {
	case DraggingProject:
		dest := strings.TrimSpace(t.ColumnID)
		if dest != "" {
			c.ops.MoveProject(c.colID, dest, c.projectID, c.ops.ProjectCount(dest))
		}
		c.reset()
	case DraggingColumn:
		if t.ColumnIndex >= 0 && t.ColumnIndex != c.columnIndex {
			c.ops.ReorderColumns(c.columnIndex, t.ColumnIndex)
		}
		c.reset()
	}
}

// DragEnd cancels whatever gesture is active.
func (c *Controller) DragEnd() {
	c.reset()
}

func (c *Controller) reset() {
	c.phase = Idle
	c.projectID = ""
	c.colID = ""
	c.columnIndex = 0
	c.hoverColumnID = ""
}
