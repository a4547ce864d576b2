package entity

import "time"

// NoteState is the lifecycle state of a note. A note moves
// Active -> SoftDeleted when its owner deletes it and back only
// through an admin restore. Data is never erased by a delete.
type NoteState string

const (
	NoteStateActive      NoteState = "active"
	NoteStateSoftDeleted NoteState = "soft_deleted"
)

type Note struct {
	Id        uint
	Title     string
	Body      string
	UserId    uint
	State     NoteState
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *Note) Deleted() bool {
	return n.State == NoteStateSoftDeleted
}
