// Package memory provides map-backed implementations of the repository
// contracts. They interpret the same specifications as the GORM
// implementations and back the service and middleware tests, which need
// ownership and soft-delete semantics without a database.
package memory

import (
	"sort"
	"sync"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/repository/specification"
)

type Store struct {
	mu sync.Mutex

	users  map[uint]*entity.User
	notes  map[uint]*entity.Note
	audits []*entity.AuditLog

	nextUserID  uint
	nextNoteID  uint
	nextAuditID uint

	writeErr error
}

func NewStore() *Store {
	return &Store{
		users: make(map[uint]*entity.User),
		notes: make(map[uint]*entity.Note),
	}
}

// FailNextWrite makes the next mutating call return err, simulating a
// persistence failure.
func (s *Store) FailNextWrite(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

func (s *Store) takeWriteErr() error {
	err := s.writeErr
	s.writeErr = nil
	return err
}

// RemoveUser drops a user record out-of-band, the way an operator would.
// Used to exercise the resolver's liveness check.
func (s *Store) RemoveUser(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// AuditLogs returns a snapshot of the recorded audit trail.
func (s *Store) AuditLogs() []*entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out
}

func matchUser(u *entity.User, specs ...specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.ByUsername:
			if u.Username != sp.Username {
				return false
			}
		}
	}
	return true
}

func matchNote(n *entity.Note, specs ...specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if n.Id != sp.ID {
				return false
			}
		case specification.OwnedBy:
			if n.UserId != sp.UserID {
				return false
			}
		case specification.InState:
			if n.State != sp.State {
				return false
			}
		}
	}
	return true
}

func sortedNoteIDs(notes map[uint]*entity.Note) []uint {
	ids := make([]uint, 0, len(notes))
	for id := range notes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedUserIDs(users map[uint]*entity.User) []uint {
	ids := make([]uint, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
