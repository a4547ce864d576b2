package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api-be/internal/dto"
	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/apperror"
	"notes-api-be/pkg/events"
)

func TestNoteCreate(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestStore()
	audit := &recordingAudit{}
	svc := NewNoteService(factory, audit, nopLogger{})
	alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)

	res, err := svc.Create(ctx, alice, &dto.CreateNoteRequest{Title: "groceries", Body: "milk, eggs"})
	require.NoError(t, err)

	assert.NotZero(t, res.Id)
	assert.Equal(t, "groceries", res.Title)
	assert.Equal(t, alice.Id, res.UserId)
	assert.False(t, res.IsDeleted)
	assert.Contains(t, audit.events, events.TypeNoteCreated)
}

func TestNoteListOwn(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestStore()
	svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
	alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
	bob := seedUser(t, factory, "bob", "secret123", entity.UserRoleUser)

	first := seedNote(t, factory, alice, "first", "a", entity.NoteStateActive)
	seedNote(t, factory, alice, "gone", "b", entity.NoteStateSoftDeleted)
	seedNote(t, factory, bob, "bobs", "c", entity.NoteStateActive)
	second := seedNote(t, factory, alice, "second", "d", entity.NoteStateActive)

	res, err := svc.ListOwn(ctx, alice)
	require.NoError(t, err)

	// Only the caller's active notes, in id order.
	require.Len(t, res, 2)
	assert.Equal(t, first.Id, res[0].Id)
	assert.Equal(t, second.Id, res[1].Id)
}

func TestNoteShow(t *testing.T) {
	ctx := context.Background()
	_, factory := newTestStore()
	svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
	alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
	bob := seedUser(t, factory, "bob", "secret123", entity.UserRoleUser)

	active := seedNote(t, factory, alice, "mine", "a", entity.NoteStateActive)
	deleted := seedNote(t, factory, alice, "gone", "b", entity.NoteStateSoftDeleted)
	foreign := seedNote(t, factory, bob, "bobs", "c", entity.NoteStateActive)

	t.Run("returns an own active note", func(t *testing.T) {
		res, err := svc.Show(ctx, alice, active.Id)
		require.NoError(t, err)
		assert.Equal(t, "mine", res.Title)
	})

	notFoundCases := map[string]uint{
		"missing note":      9999,
		"another user's":    foreign.Id,
		"soft-deleted note": deleted.Id,
	}
	for name, id := range notFoundCases {
		t.Run(name+" answers not found", func(t *testing.T) {
			_, err := svc.Show(ctx, alice, id)
			require.Error(t, err)

			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusNotFound, appErr.Code)
			assert.Equal(t, "note not found", appErr.Message)
		})
	}
}

func TestNoteUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces provided fields only", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "old title", "old body", entity.NoteStateActive)

		res, err := svc.Update(ctx, alice, note.Id, &dto.UpdateNoteRequest{Title: "new title"})
		require.NoError(t, err)

		assert.Equal(t, "new title", res.Title)
		assert.Equal(t, "old body", res.Body)
	})

	t.Run("empty request changes nothing", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "title", "body", entity.NoteStateActive)

		res, err := svc.Update(ctx, alice, note.Id, &dto.UpdateNoteRequest{})
		require.NoError(t, err)

		assert.Equal(t, "title", res.Title)
		assert.Equal(t, "body", res.Body)
	})

	t.Run("the owner may edit a soft-deleted note", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "gone", "body", entity.NoteStateSoftDeleted)

		res, err := svc.Update(ctx, alice, note.Id, &dto.UpdateNoteRequest{Body: "revised"})
		require.NoError(t, err)

		assert.Equal(t, "revised", res.Body)
		assert.True(t, res.IsDeleted)
	})

	t.Run("another user's note answers not found", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		bob := seedUser(t, factory, "bob", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, bob, "bobs", "body", entity.NoteStateActive)

		_, err := svc.Update(ctx, alice, note.Id, &dto.UpdateNoteRequest{Title: "stolen"})
		require.Error(t, err)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}

func TestNoteDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes and hides the note", func(t *testing.T) {
		_, factory := newTestStore()
		audit := &recordingAudit{}
		svc := NewNoteService(factory, audit, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "title", "body", entity.NoteStateActive)

		require.NoError(t, svc.Delete(ctx, alice, note.Id))
		assert.Contains(t, audit.events, events.TypeNoteDeleted)

		_, err := svc.Show(ctx, alice, note.Id)
		require.Error(t, err)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("deleting twice is not an error", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "title", "body", entity.NoteStateActive)

		require.NoError(t, svc.Delete(ctx, alice, note.Id))
		require.NoError(t, svc.Delete(ctx, alice, note.Id))
	})

	t.Run("another user's note answers not found", func(t *testing.T) {
		_, factory := newTestStore()
		svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		bob := seedUser(t, factory, "bob", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, bob, "bobs", "body", entity.NoteStateActive)

		err := svc.Delete(ctx, alice, note.Id)
		require.Error(t, err)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}

func TestNotePersistenceFailure(t *testing.T) {
	ctx := context.Background()

	requireInternal := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		// The caller only sees the generic message, never the cause.
		assert.Equal(t, "internal server error", appErr.Message)
	}

	t.Run("failed create writes nothing", func(t *testing.T) {
		store, factory := newTestStore()
		audit := &recordingAudit{}
		svc := NewNoteService(factory, audit, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)

		store.FailNextWrite(errors.New("connection reset by peer"))
		_, err := svc.Create(ctx, alice, &dto.CreateNoteRequest{Title: "doomed", Body: "b"})
		requireInternal(t, err)
		assert.Empty(t, audit.events)

		notes, err := svc.ListOwn(ctx, alice)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("failed update leaves the note unchanged", func(t *testing.T) {
		store, factory := newTestStore()
		svc := NewNoteService(factory, &recordingAudit{}, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "old title", "old body", entity.NoteStateActive)

		store.FailNextWrite(errors.New("connection reset by peer"))
		_, err := svc.Update(ctx, alice, note.Id, &dto.UpdateNoteRequest{Title: "new title"})
		requireInternal(t, err)

		shown, err := svc.Show(ctx, alice, note.Id)
		require.NoError(t, err)
		assert.Equal(t, "old title", shown.Title)
	})

	t.Run("failed delete leaves the note visible", func(t *testing.T) {
		store, factory := newTestStore()
		audit := &recordingAudit{}
		svc := NewNoteService(factory, audit, nopLogger{})
		alice := seedUser(t, factory, "alice", "secret123", entity.UserRoleUser)
		note := seedNote(t, factory, alice, "title", "body", entity.NoteStateActive)

		store.FailNextWrite(errors.New("connection reset by peer"))
		requireInternal(t, svc.Delete(ctx, alice, note.Id))
		assert.Empty(t, audit.events)

		shown, err := svc.Show(ctx, alice, note.Id)
		require.NoError(t, err)
		assert.False(t, shown.IsDeleted)
	})
}
