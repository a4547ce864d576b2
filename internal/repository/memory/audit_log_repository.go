package memory

import (
	"context"
	"time"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/repository/contract"
	"notes-api-be/internal/repository/specification"
)

type AuditLogRepository struct {
	store *Store
}

func NewAuditLogRepository(store *Store) contract.AuditLogRepository {
	return &AuditLogRepository{store: store}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.takeWriteErr(); err != nil {
		return err
	}

	r.store.nextAuditID++
	log.Id = r.store.nextAuditID
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	copied := *log
	r.store.audits = append(r.store.audits, &copied)
	return nil
}

func (r *AuditLogRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	return r.store.AuditLogs(), nil
}
