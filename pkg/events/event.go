package events

import "time"

// Event is the envelope published on the in-process audit bus.
type Event struct {
	Type       string                 `json:"type"`
	Details    map[string]interface{} `json:"details"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Security-relevant event types persisted to the audit trail.
const (
	TypeUserRegistered = "user.registered"
	TypeUserLogin      = "user.login"
	TypeUserCreated    = "user.created"
	TypeNoteCreated    = "note.created"
	TypeNoteDeleted    = "note.deleted"
	TypeNoteRestored   = "note.restored"
)
