package memory

import (
	"context"

	"notes-api-be/internal/repository/contract"
	"notes-api-be/internal/repository/unitofwork"
)

// unitOfWork satisfies the transactional contract over the map store.
// Writes apply immediately; Begin/Commit/Rollback only track pairing so
// the service layer's transaction discipline still type-checks and runs.
type unitOfWork struct {
	store *Store
	inTx  bool
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *unitOfWork) Commit() error {
	u.inTx = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	u.inTx = false
	return nil
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return NewUserRepository(u.store)
}

func (u *unitOfWork) NoteRepository() contract.NoteRepository {
	return NewNoteRepository(u.store)
}

func (u *unitOfWork) AuditLogRepository() contract.AuditLogRepository {
	return NewAuditLogRepository(u.store)
}

type repositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}
