package unitofwork

import (
	"context"

	"notes-api-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to a single request. Begin opens a
// transaction so a read-check-then-write sequence commits atomically;
// without Begin the repositories run against the shared pool directly.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	AuditLogRepository() contract.AuditLogRepository
}
