package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/token"
	"notes-api-be/internal/repository/memory"
	"notes-api-be/internal/repository/unitofwork"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// recordingAudit captures published events so tests can assert on the
// trail without running the consumer.
type recordingAudit struct {
	events []string
}

func (r *recordingAudit) Publish(ctx context.Context, eventType string, details map[string]interface{}) {
	r.events = append(r.events, eventType)
}

func newTestStore() (*memory.Store, unitofwork.RepositoryFactory) {
	store := memory.NewStore()
	return store, memory.NewRepositoryFactory(store)
}

func newTestTokens() *token.Service {
	return token.NewService("test-secret", token.DefaultAccessTokenTTL)
}

func seedUser(t *testing.T, factory unitofwork.RepositoryFactory, username, password string, role entity.UserRole) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	now := time.Now()
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.UserRepository().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedNote(t *testing.T, factory unitofwork.RepositoryFactory, owner *entity.User, title, body string, state entity.NoteState) *entity.Note {
	t.Helper()

	now := time.Now()
	note := &entity.Note{
		Title:     title,
		Body:      body,
		UserId:    owner.Id,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}

	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.NoteRepository().Create(context.Background(), note); err != nil {
		t.Fatalf("seed note: %v", err)
	}
	return note
}
