package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notes-api-be/internal/dto"
	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/apperror"
	"notes-api-be/internal/pkg/logger"
	"notes-api-be/internal/repository/specification"
	"notes-api-be/internal/repository/unitofwork"
	"notes-api-be/pkg/events"
)

// IAdminService covers the admin-only surface. Admin views deliberately
// ignore the soft-delete filter and the ownership filter.
type IAdminService interface {
	ListAllNotes(ctx context.Context) ([]*dto.NoteResponse, error)
	ListNotesForUser(ctx context.Context, userID uint) ([]*dto.NoteResponse, error)
	RestoreNote(ctx context.Context, id uint) (*dto.NoteResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditPublisher
	log        logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, audit IAuditPublisher, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		audit:      audit,
		log:        log,
	}
}

func (s *adminService) ListAllNotes(ctx context.Context) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx, specification.OrderBy{Field: "id"})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toNoteResponses(notes), nil
}

func (s *adminService) ListNotesForUser(ctx context.Context, userID uint) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userID},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toNoteResponses(notes), nil
}

func (s *adminService) RestoreNote(ctx context.Context, id uint) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	// Restore matches on the deleted state only: any admin may restore
	// any user's note, and an active note is "not found" here.
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.InState{State: entity.NoteStateSoftDeleted},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if note == nil {
		return nil, apperror.NotFound("note not found")
	}

	note.State = entity.NoteStateActive
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.audit.Publish(ctx, events.TypeNoteRestored, map[string]interface{}{
		"note_id": note.Id,
		"user_id": note.UserId,
	})
	s.log.Info("admin", "note restored", map[string]interface{}{
		"note_id": note.Id,
		"user_id": note.UserId,
	})

	return toNoteResponse(note), nil
}

func (s *adminService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.UserRole(req.Role)
	if !role.Valid() {
		return nil, apperror.BadRequest("invalid role")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &entity.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.audit.Publish(ctx, events.TypeUserCreated, map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
		"role":     string(user.Role),
	})
	s.log.Info("admin", "user created", map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
		"role":     string(user.Role),
	})

	return &dto.UserResponse{
		Id:       user.Id,
		Username: user.Username,
		Role:     string(user.Role),
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "id"})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	responses := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		responses[i] = &dto.UserResponse{
			Id:       u.Id,
			Username: u.Username,
			Role:     string(u.Role),
		}
	}
	return responses, nil
}
