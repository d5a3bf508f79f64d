package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"kanbo/internal/model"
)

var trailingDigits = regexp.MustCompile(`[0-9]+$`)

// nextProjectSuffix scans every project display id on the board for a
// trailing run of digits and returns one past the maximum found. Ids
// without a numeric tail are skipped, so deleting a project never frees
// its number for reuse while a higher one exists.
func nextProjectSuffix(b *model.Board) int {
	max := 0
	for ci := range b.Columns {
		for pi := range b.Columns[ci].Projects {
			m := trailingDigits.FindString(b.Columns[ci].Projects[pi].ProjectID)
			if m == "" {
				continue
			}
			n, err := strconv.Atoi(m)
			if err != nil {
				continue
			}
			if n > max {
				max = n
			}
		}
	}
	return max + 1
}

func formatProjectID(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// CreateProject appends a fresh project to the column. The display id
// combines the board prefix with the next free numeric suffix, zero
// padded to three digits; the name defaults to "New Project" for the
// user to rename.
func (e *Engine) CreateProject(boardID, columnID string) *model.Project {
	b, ok := e.db.FindBoard(boardID)
	if !ok {
		return nil
	}
	idx := columnIndex(b, columnID)
	if idx < 0 {
		return nil
	}
	c := &b.Columns[idx]
	p := model.Project{
		ID:          e.ids.NextID(e.db, "proj"),
		ProjectID:   formatProjectID(b.ProjectIDPrefix, nextProjectSuffix(b)),
		ProjectName: "New Project",
		Links:       []model.Link{},
		Comments:    []model.Comment{},
		ActivityLog: []model.Activity{},
	}
	c.Projects = append(c.Projects, p)
	created := &c.Projects[len(c.Projects)-1]
	e.appendActivity(created, model.ActionCreated, "Project created", nil, nil)
	e.persist()
	return created
}

// ProjectUpdate carries the fields UpdateProject may change; nil leaves
// the field alone.
type ProjectUpdate struct {
	ProjectName *string
	ProjectID   *string
	Description *string
}

// UpdateProject merges the given fields into the project. Each field
// that actually changes value gets exactly one activity record, diffed
// against the stored value before the merge is applied. An update that
// changes nothing logs nothing.
func (e *Engine) UpdateProject(boardID, columnID, projectID string, upd ProjectUpdate) {
	p, ok := e.db.FindProject(boardID, columnID, projectID)
	if !ok {
		return
	}
	if upd.ProjectName != nil {
		next := strings.TrimSpace(*upd.ProjectName)
		if next != p.ProjectName {
			e.appendActivity(p, model.ActionNameChanged, "Project name changed", p.ProjectName, next)
			p.ProjectName = next
		}
	}
	if upd.ProjectID != nil {
		next := strings.TrimSpace(*upd.ProjectID)
		if next != p.ProjectID {
			e.appendActivity(p, model.ActionIDChanged, "Project ID changed", p.ProjectID, next)
			p.ProjectID = next
		}
	}
	if upd.Description != nil {
		next := *upd.Description
		if next != p.Description {
			e.appendActivity(p, model.ActionDescriptionUpdated, "Description updated", p.Description, next)
			p.Description = next
		}
	}
	e.persist()
}

// DeleteProject removes the project from its column.
func (e *Engine) DeleteProject(boardID, columnID, projectID string) {
	c, ok := e.db.FindColumn(boardID, columnID)
	if !ok {
		return
	}
	idx := projectIndex(c, projectID)
	if idx < 0 {
		return
	}
	c.Projects = append(c.Projects[:idx], c.Projects[idx+1:]...)
	e.persist()
}

// MoveProject removes the project from its source column and inserts it
// into the destination column at toIndex (clamped into range). A move
// between two different columns logs a moved activity naming both
// column titles; repositioning within the same column logs nothing.
func (e *Engine) MoveProject(boardID, fromColumnID, toColumnID, projectID string, toIndex int) {
	b, ok := e.db.FindBoard(boardID)
	if !ok {
		return
	}
	fromIdx := columnIndex(b, fromColumnID)
	toIdx := columnIndex(b, toColumnID)
	if fromIdx < 0 || toIdx < 0 {
		return
	}
	from := &b.Columns[fromIdx]
	to := &b.Columns[toIdx]
	idx := projectIndex(from, projectID)
	if idx < 0 {
		return
	}

	moved := from.Projects[idx]
	from.Projects = append(from.Projects[:idx], from.Projects[idx+1:]...)

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(to.Projects) {
		toIndex = len(to.Projects)
	}
	projects := make([]model.Project, 0, len(to.Projects)+1)
	projects = append(projects, to.Projects[:toIndex]...)
	projects = append(projects, moved)
	projects = append(projects, to.Projects[toIndex:]...)
	to.Projects = projects

	if from.ID != to.ID {
		e.appendActivity(&to.Projects[toIndex], model.ActionMoved,
			fmt.Sprintf("Moved from %q to %q", from.Title, to.Title), nil, nil)
	}
	e.persist()
}

// ProjectCount reports how many projects a column holds; drop targets
// use it for append-position moves.
func (e *Engine) ProjectCount(boardID, columnID string) int {
	c, ok := e.db.FindColumn(boardID, columnID)
	if !ok {
		return 0
	}
	return len(c.Projects)
}

func projectIndex(c *model.Column, projectID string) int {
	projectID = strings.TrimSpace(projectID)
	for i := range c.Projects {
		if c.Projects[i].ID == projectID {
			return i
		}
	}
	return -1
}
