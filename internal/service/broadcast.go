package service

import "teamboard-server/internal/domain"

// Message types pushed over the live board feed.
const (
	MsgNoteCreated  = "note_created"
	MsgNoteUpdated  = "note_updated"
	MsgNoteDeleted  = "note_deleted"
	MsgCommentAdded = "comment_added"
	MsgEventCreated = "event_created"
	MsgEventUpdated = "event_updated"
	MsgEventDeleted = "event_deleted"
)

// Broadcaster fans a board change out to connected clients whose visibility
// includes the resource's team. A nil Broadcaster disables the feed.
type Broadcaster interface {
	Broadcast(msgType string, team domain.Team, payload interface{})
}

// deletedPayload is what subscribers get when a resource disappears.
type deletedPayload struct {
	ID   string      `json:"id"`
	Team domain.Team `json:"team"`
}
