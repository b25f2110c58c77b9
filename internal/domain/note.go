package domain

import "time"

type Note struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Author         string         `json:"author"`
	AuthorName     string         `json:"authorName"`
	Team           Team           `json:"team"`
	Tags           []string       `json:"tags"`
	VersionHistory []VersionEntry `json:"versionHistory"`
	Comments       []Comment      `json:"comments"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// VersionEntry is a snapshot of a note's content before an edit replaced it.
// The live Content field is always the current state; history holds only
// strictly-past states, oldest first. Entries are never rewritten.
type VersionEntry struct {
	Content    string    `json:"content"`
	EditedAt   time.Time `json:"editedAt"`
	EditorID   string    `json:"editor"`
	EditorName string    `json:"editorName"`
}

// Comment is append-only: there is no edit or delete path for a posted
// comment.
type Comment struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (n *Note) AuthorID() string { return n.Author }

func (n *Note) TeamTag() Team { return n.Team }

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Team    string   `json:"team" validate:"required"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest carries a partial patch: nil fields are left untouched.
type UpdateNoteRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Team    *string   `json:"team"`
	Tags    *[]string `json:"tags"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

// NoteQuery is the storage-facing predicate produced by the query
// translator. AllowedTeams empty means no team restriction (Admin listing
// without a filter).
type NoteQuery struct {
	AllowedTeams []Team
	Search       string
	Tag          string
}
