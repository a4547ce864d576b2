package memory

import (
	"context"
	"fmt"
	"time"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/repository/contract"
	"notes-api-be/internal/repository/specification"
)

type NoteRepository struct {
	store *Store
}

func NewNoteRepository(store *Store) contract.NoteRepository {
	return &NoteRepository{store: store}
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.takeWriteErr(); err != nil {
		return err
	}

	r.store.nextNoteID++
	note.Id = r.store.nextNoteID
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	copied := *note
	r.store.notes[note.Id] = &copied
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.takeWriteErr(); err != nil {
		return err
	}
	if _, ok := r.store.notes[note.Id]; !ok {
		return fmt.Errorf("note %d does not exist", note.Id)
	}

	note.UpdatedAt = time.Now()
	copied := *note
	r.store.notes[note.Id] = &copied
	return nil
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range sortedNoteIDs(r.store.notes) {
		n := r.store.notes[id]
		if matchNote(n, specs...) {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *NoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var notes []*entity.Note
	for _, id := range sortedNoteIDs(r.store.notes) {
		n := r.store.notes[id]
		if matchNote(n, specs...) {
			copied := *n
			notes = append(notes, &copied)
		}
	}
	return notes, nil
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(notes)), nil
}
