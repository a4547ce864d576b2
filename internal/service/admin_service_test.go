package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api-be/internal/dto"
	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/apperror"
	"notes-api-be/pkg/events"
)

func TestAdminListAllNotes(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestStore()
	svc := NewAdminService(factory, &recordingAudit{}, nopLogger{})
	alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
	bob := seedUser(t, factory, "bob", "secret123", entity.UserRoleUser)

	seedNote(t, factory, alice, "active", "a", entity.NoteStateActive)
	seedNote(t, factory, alice, "gone", "b", entity.NoteStateSoftDeleted)
	seedNote(t, factory, bob, "bobs", "c", entity.NoteStateActive)

	res, err := svc.ListAllNotes(ctx)
	require.NoError(t, err)

	// Every note of every user, deleted ones included.
	require.Len(t, res, 3)
	assert.True(t, res[1].IsDeleted)
}

func TestAdminListNotesForUser(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestStore()
	svc := NewAdminService(factory, &recordingAudit{}, nopLogger{})
	alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
	bob := seedUser(t, factory, "bob", "secret123", entity.UserRoleUser)

	seedNote(t, factory, alice, "active", "a", entity.NoteStateActive)
	seedNote(t, factory, alice, "gone", "b", entity.NoteStateSoftDeleted)
	seedNote(t, factory, bob, "bobs", "c", entity.NoteStateActive)

	t.Run("returns both states for the user", func(t *testing.T) {
		res, err := svc.ListNotesForUser(ctx, alice.Id)
		require.NoError(t, err)
		require.Len(t, res, 2)
	})

	t.Run("unknown user yields an empty list", func(t *testing.T) {
		res, err := svc.ListNotesForUser(ctx, 9999)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestAdminRestoreNote(t *testing.T) {
	ctx := context.Background()

	t.Run("restores any user's soft-deleted note", func(t *testing.T) {
		_, factory := newTestStore()
		audit := &recordingAudit{}
		svc := NewAdminService(factory, audit, nopLogger{})
		noteSvc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "gone", "body", entity.NoteStateSoftDeleted)

		res, err := svc.RestoreNote(ctx, note.Id)
		require.NoError(t, err)
		assert.False(t, res.IsDeleted)
		assert.Contains(t, audit.events, events.TypeNoteRestored)

		// The owner can see it again.
		shown, err := noteSvc.Show(ctx, alice, note.Id)
		require.NoError(t, err)
		assert.Equal(t, "gone", shown.Title)
	})

	t.Run("an active note answers not found", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewAdminService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "live", "body", entity.NoteStateActive)

		_, err := svc.RestoreNote(ctx, note.Id)
		require.Error(t, err)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("a missing note answers not found", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewAdminService(factory, &recordingAudit{}, nopLogger{})

		_, err := svc.RestoreNote(ctx, 9999)
		require.Error(t, err)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}

func TestAdminCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("may create an admin account", func(t *testing.T) {
		_, factory := newTestStore()
		audit := &recordingAudit{}
		svc := NewAdminService(factory, audit, nopLogger{})

		res, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "root2", Password: "secret123", Role: "admin"})
		require.NoError(t, err)

		assert.Equal(t, "admin", res.Role)
		assert.Contains(t, audit.events, events.TypeUserCreated)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewAdminService(factory, &recordingAudit{}, nopLogger{})

		_, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "odd", Password: "secret123", Role: "superuser"})
		require.Error(t, err)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewAdminService(factory, &recordingAudit{}, nopLogger{})
		seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)

		_, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "alice", Password: "secret123", Role: "user"})
		require.Error(t, err)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	})
}

func TestAdminListUsers(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestStore()
	svc := NewAdminService(factory, &recordingAudit{}, nopLogger{})
	seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
	seedUser(t, factory, "root", "secret123", entity.UserRoleAdmin)

	res, err := svc.ListUsers(ctx)
	require.NoError(t, err)

	require.Len(t, res, 2)
	assert.Equal(t, "alice", res[0].Username)
	assert.Equal(t, "admin", res[1].Role)
}
