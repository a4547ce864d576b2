package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notes-api-be/internal/dto"
	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/apperror"
	"notes-api-be/internal/pkg/logger"
	"notes-api-be/internal/pkg/token"
	"notes-api-be/internal/repository/specification"
	"notes-api-be/internal/repository/unitofwork"
	"notes-api-be/pkg/events"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	tokens     *token.Service
	audit      IAuditPublisher
	log        logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokens *token.Service,
	audit IAuditPublisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		tokens:     tokens,
		audit:      audit,
		log:        log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := entity.UserRole(req.Role)
	if role == "" {
		role = entity.UserRoleUser
	}
	if role == entity.UserRoleAdmin {
		// Admin accounts only come from the bootstrap hook or another admin.
		return nil, apperror.Forbidden("cannot register an admin account")
	}
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

	s.audit.Publish(ctx, events.TypeUserRegistered, map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
	})
	s.log.Info("auth", "user registered", map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
	})

	return &dto.UserResponse{
		Id:       user.Id,
		Username: user.Username,
		Role:     string(user.Role),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// Unknown username and wrong password answer identically so a caller
	// cannot probe which usernames exist.
	if user == nil {
		return nil, apperror.Unauthorized("incorrect username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("incorrect username or password")
	}

	signed, err := s.tokens.Issue(user.Username, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.audit.Publish(ctx, events.TypeUserLogin, map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
	})

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
	}, nil
}
