package board

import (
	"net/url"
	"strings"

	"kanbo/internal/model"
)

// validLinkURL accepts absolute http and https URLs only.
func validLinkURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// AddLink attaches a link to the project. Rejected URLs produce a
// notice and leave the project untouched: no link, no activity, no
// write. An empty title falls back to the URL itself.
func (e *Engine) AddLink(boardID, columnID, projectID, title, rawURL string) *model.Link {
	p, ok := e.db.FindProject(boardID, columnID, projectID)
	if !ok {
		return nil
	}
	rawURL = strings.TrimSpace(rawURL)
	if !validLinkURL(rawURL) {
		e.notifyf("Invalid link URL %q: only http and https links are allowed.", rawURL)
		return nil
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = rawURL
	}
	l := model.Link{
		ID:        e.ids.NextID(e.db, "link"),
		URL:       rawURL,
		Title:     title,
		Timestamp: e.now(),
	}
	p.Links = append(p.Links, l)
	e.appendActivity(p, model.ActionLinkAdded, "Link added", nil,
		model.LinkValue{Title: l.Title, URL: l.URL})
	e.persist()
	return &p.Links[len(p.Links)-1]
}

// LinkUpdate carries the fields UpdateLink may change; nil leaves the
// field alone.
type LinkUpdate struct {
	Title *string
	URL   *string
}

// UpdateLink edits a link in place and refreshes its timestamp. A new
// URL goes through the same validation as AddLink; a rejected URL
// leaves the link untouched. The activity records the full before and
// after pairs.
func (e *Engine) UpdateLink(boardID, columnID, projectID, linkID string, upd LinkUpdate) {
	p, ok := e.db.FindProject(boardID, columnID, projectID)
	if !ok {
		return
	}
	idx := linkIndex(p, linkID)
	if idx < 0 {
		return
	}
	l := &p.Links[idx]

	nextTitle := l.Title
	if upd.Title != nil {
		nextTitle = strings.TrimSpace(*upd.Title)
	}
	nextURL := l.URL
	if upd.URL != nil {
		nextURL = strings.TrimSpace(*upd.URL)
	}
	if !validLinkURL(nextURL) {
		e.notifyf("Invalid link URL %q: only http and https links are allowed.", nextURL)
		return
	}
	if nextTitle == "" {
		nextTitle = nextURL
	}

	old := model.LinkValue{Title: l.Title, URL: l.URL}
	l.Title = nextTitle
	l.URL = nextURL
	l.Timestamp = e.now()
	e.appendActivity(p, model.ActionLinkUpdated, "Link updated", old,
		model.LinkValue{Title: nextTitle, URL: nextURL})
	e.persist()
}

// DeleteLink removes a link, logging the removed title and URL so the
// activity trail keeps the content.
func (e *Engine) DeleteLink(boardID, columnID, projectID, linkID string) {
	p, ok := e.db.FindProject(boardID, columnID, projectID)
	if !ok {
		return
	}
	idx := linkIndex(p, linkID)
	if idx < 0 {
		return
	}
	old := model.LinkValue{Title: p.Links[idx].Title, URL: p.Links[idx].URL}
	p.Links = append(p.Links[:idx], p.Links[idx+1:]...)
	e.appendActivity(p, model.ActionLinkDeleted, "Link deleted", old, nil)
	e.persist()
}

func linkIndex(p *model.Project, linkID string) int {
	linkID = strings.TrimSpace(linkID)
	for i := range p.Links {
		if p.Links[i].ID == linkID {
			return i
		}
	}
	return -1
}
