package service

import (
	"context"
	"time"

	"notes-api-be/internal/dto"
	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/apperror"
	"notes-api-be/internal/pkg/logger"
	"notes-api-be/internal/repository/specification"
	"notes-api-be/internal/repository/unitofwork"
	"notes-api-be/pkg/events"
)

type INoteService interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	ListOwn(ctx context.Context, actor *entity.User) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, actor *entity.User, id uint) (*dto.NoteResponse, error)
	Update(ctx context.Context, actor *entity.User, id uint, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uint) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditPublisher
	log        logger.ILogger
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, audit IAuditPublisher, log logger.ILogger) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		audit:      audit,
		log:        log,
	}
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Body:      n.Body,
		UserId:    n.UserId,
		IsDeleted: n.Deleted(),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteResponses(notes []*entity.Note) []*dto.NoteResponse {
	responses := make([]*dto.NoteResponse, len(notes))
	for i, n := range notes {
		responses[i] = toNoteResponse(n)
	}
	return responses
}

func (s *noteService) Create(ctx context.Context, actor *entity.User, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	note := &entity.Note{
		Title:     req.Title,
		Body:      req.Body,
		UserId:    actor.Id,
		State:     entity.NoteStateActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.audit.Publish(ctx, events.TypeNoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": actor.Id,
	})
	s.log.Info("note", "note created", map[string]interface{}{
		"note_id": note.Id,
		"user_id": actor.Id,
	})

	return toNoteResponse(note), nil
}

func (s *noteService) ListOwn(ctx context.Context, actor *entity.User) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: actor.Id},
		specification.InState{State: entity.NoteStateActive},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toNoteResponses(notes), nil
}

func (s *noteService) Show(ctx context.Context, actor *entity.User, id uint) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: actor.Id},
		specification.InState{State: entity.NoteStateActive},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// Missing, foreign and soft-deleted all collapse to the same answer
	// so the response leaks nothing about other users' data.
	if note == nil {
		return nil, apperror.NotFound("note not found")
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, actor *entity.User, id uint, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The ownership read and the write commit as one transaction.
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	// No state filter: the owner may still edit a soft-deleted note.
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: actor.Id},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if note == nil {
		return nil, apperror.NotFound("note not found")
	}

	// Empty strings mean "field not provided" and leave the value alone.
	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Body != "" {
		note.Body = req.Body
	}
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, actor *entity.User, id uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	// No state filter: deleting an already-deleted note is a no-op, not
	// an error.
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: actor.Id},
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if note == nil {
		return apperror.NotFound("note not found")
	}

	note.State = entity.NoteStateSoftDeleted
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}

	s.audit.Publish(ctx, events.TypeNoteDeleted, map[string]interface{}{
		"note_id": note.Id,
		"user_id": actor.Id,
	})
	s.log.Info("note", "note soft-deleted", map[string]interface{}{
		"note_id": note.Id,
		"user_id": actor.Id,
	})

	return nil
}
