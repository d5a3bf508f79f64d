package model

import "time"

// Action identifies the kind of change an Activity records.
type Action string

const (
	ActionCreated            Action = "created"
	ActionNameChanged        Action = "name_changed"
	ActionIDChanged          Action = "id_changed"
	ActionDescriptionUpdated Action = "description_updated"
	ActionMoved              Action = "moved"
	ActionLinkAdded          Action = "link_added"
	ActionLinkUpdated        Action = "link_updated"
	ActionLinkDeleted        Action = "link_deleted"
	ActionCommentAdded       Action = "comment_added"
	ActionCommentUpdated     Action = "comment_updated"
	ActionCommentDeleted     Action = "comment_deleted"
)

type Board struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ProjectIDPrefix string   `json:"projectIdPrefix"`
	Description     string   `json:"description,omitempty"`
	Columns         []Column `json:"columns"`
}

// Column order is significant: Order always equals the column's index
// within its board and is re-derived after every insert/delete/reorder.
type Column struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Projects []Project `json:"projects"`
}

type Project struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	ProjectName string     `json:"projectName"`
	Description string     `json:"description,omitempty"`
	Links       []Link     `json:"links"`
	Comments    []Comment  `json:"comments"`
	ActivityLog []Activity `json:"activityLog"`
}

type Link struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Activity is one immutable record in a project's activity log.
//
// OldValue/NewValue are action-dependent: plain strings for name/id/
// description/comment changes, LinkValue pairs for link changes, and
// null where not applicable (creation, move).
type Activity struct {
	ID          string    `json:"id"`
	Action      Action    `json:"action"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	OldValue    any       `json:"oldValue"`
	NewValue    any       `json:"newValue"`
}

// LinkValue is the structured old/new payload carried by link activities.
type LinkValue struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
