package specification

import (
	"gorm.io/gorm"

	"notes-api-be/internal/entity"
)

// OwnedBy restricts a query to rows owned by a single user. Every
// non-admin note query must carry it.
type OwnedBy struct {
	UserID uint
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// InState filters notes by lifecycle state, so the is_deleted predicate
// lives in exactly one place. Queries that omit it see both states.
type InState struct {
	State entity.NoteState
}

func (s InState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", s.State == entity.NoteStateSoftDeleted)
}
