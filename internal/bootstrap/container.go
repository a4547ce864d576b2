package bootstrap

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"notes-api-be/internal/config"
	"notes-api-be/internal/controller"
	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/logger"
	"notes-api-be/internal/pkg/serverutils"
	"notes-api-be/internal/pkg/token"
	"notes-api-be/internal/repository/specification"
	"notes-api-be/internal/repository/unitofwork"
	"notes-api-be/internal/service"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	NoteController  controller.INoteController
	AdminController controller.IAdminController

	// Route middleware
	AuthMiddleware *serverutils.AuthMiddleware

	// Background Services (Exposed for main.go to run)
	AuditConsumer service.IAuditConsumer

	Logger logger.ILogger

	uowFactory unitofwork.RepositoryFactory
	cfg        *config.Config
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	auditPublisher := service.NewAuditPublisher(pubSub, sysLogger)
	auditConsumer := service.NewAuditConsumer(pubSub, uowFactory, sysLogger)

	// 3. Services
	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authMiddleware := serverutils.NewAuthMiddleware(tokens, uowFactory)

	authService := service.NewAuthService(uowFactory, tokens, auditPublisher, sysLogger)
	noteService := service.NewNoteService(uowFactory, auditPublisher, sysLogger)
	adminService := service.NewAdminService(uowFactory, auditPublisher, sysLogger)

	// 4. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		NoteController:  controller.NewNoteController(noteService),
		AdminController: controller.NewAdminController(adminService),

		AuthMiddleware: authMiddleware,
		AuditConsumer:  auditConsumer,
		Logger:         sysLogger,

		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

// EnsureDefaultAdmin creates the bootstrap admin account when no user
// with the configured username exists yet. Safe to run on every start.
func (c *Container) EnsureDefaultAdmin(ctx context.Context) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: c.cfg.App.AdminUsername})
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.cfg.App.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &entity.User{
		Username:     c.cfg.App.AdminUsername,
		PasswordHash: string(hash),
		Role:         entity.UserRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, admin); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	c.Logger.Info("bootstrap", "default admin created", map[string]interface{}{
		"username": admin.Username,
	})
	return nil
}
