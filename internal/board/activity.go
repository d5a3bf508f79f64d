package board

import (
	"kanbo/internal/model"
	"kanbo/internal/store"
)

// appendActivity prepends a record to the project's activity log so the
// newest entry is always first. The log is append-only and unbounded;
// nothing ever edits or drops an entry.
func (e *Engine) appendActivity(p *model.Project, action model.Action, description string, oldValue, newValue any) {
	a := model.Activity{
		ID:          store.NextActivityID(),
		Action:      action,
		Description: description,
		Timestamp:   e.now(),
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	p.ActivityLog = append([]model.Activity{a}, p.ActivityLog...)
}

// LogActivity records a change against the project addressed by the id
// chain. If the board, column, or project does not resolve, the call is
// a silent no-op.
func (e *Engine) LogActivity(boardID, columnID, projectID string, action model.Action, description string, oldValue, newValue any) {
	p, ok := e.db.FindProject(boardID, columnID, projectID)
	if !ok {
		return
	}
	e.appendActivity(p, action, description, oldValue, newValue)
	e.persist()
}
