package board

import (
	"strings"

	"kanbo/internal/model"
)

// AddComment appends a comment to the project. The activity carries the
// comment text as its new value.
func (e *Engine) AddComment(boardID, columnID, projectID, text string) *model.Comment {
	p, ok := e.db.FindProject(boardID, columnID, projectID)
	if !ok {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	c := model.Comment{
		ID:        e.ids.NextID(e.db, "comment"),
		Text:      text,
		Timestamp: e.now(),
	}
	p.Comments = append(p.Comments, c)
	e.appendActivity(p, model.ActionCommentAdded, "Comment added", nil, text)
	e.persist()
	return &p.Comments[len(p.Comments)-1]
}

// UpdateComment replaces a comment's text and refreshes its timestamp.
// The activity records both the old and the new text.
func (e *Engine) UpdateComment(boardID, columnID, projectID, commentID, text string) {
	p, ok := e.db.FindProject(boardID, columnID, projectID)
	if !ok {
		return
	}
	idx := commentIndex(p, commentID)
	if idx < 0 {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	c := &p.Comments[idx]
	old := c.Text
	c.Text = text
	c.Timestamp = e.now()
	e.appendActivity(p, model.ActionCommentUpdated, "Comment updated", old, text)
	e.persist()
}

// DeleteComment removes a comment, logging the removed text as the
// activity's old value.
func (e *Engine) DeleteComment(boardID, columnID, projectID, commentID string) {
	p, ok := e.db.FindProject(boardID, columnID, projectID)
	if !ok {
		return
	}
	idx := commentIndex(p, commentID)
	if idx < 0 {
		return
	}
	old := p.Comments[idx].Text
	p.Comments = append(p.Comments[:idx], p.Comments[idx+1:]...)
	e.appendActivity(p, model.ActionCommentDeleted, "Comment deleted", old, nil)
	e.persist()
}

func commentIndex(p *model.Project, commentID string) int {
	commentID = strings.TrimSpace(commentID)
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return i
		}
	}
	return -1
}
