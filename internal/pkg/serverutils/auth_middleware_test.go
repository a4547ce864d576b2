package serverutils

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/token"
	"notes-api-be/internal/repository/memory"
)

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

func newAuthTestApp(t *testing.T) (*fiber.App, *memory.Store, *token.Service) {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	tokens := token.NewService("test-secret", time.Minute)
	auth := NewAuthMiddleware(tokens, factory)

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(testLogger{}))

	userOnly := app.Group("/user-only")
	userOnly.Use(auth.Authenticate)
	userOnly.Use(auth.RequireRole(entity.UserRoleUser))
	userOnly.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", CurrentUser(ctx).Username))
	})

	adminOnly := app.Group("/admin-only")
	adminOnly.Use(auth.Authenticate)
	adminOnly.Use(auth.RequireRole(entity.UserRoleAdmin))
	adminOnly.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", CurrentUser(ctx).Username))
	})

	return app, store, tokens
}

func seedUser(t *testing.T, store *memory.Store, username string, role entity.UserRole) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:     username,
		PasswordHash: "unused",
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	factory := memory.NewRepositoryFactory(store)
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))
	return user
}

func TestAuthenticate(t *testing.T) {
	t.Run("accepts a valid token", func(t *testing.T) {
		app, store, tokens := newAuthTestApp(t)
		seedUser(t, store, "alice", entity.UserRoleUser)

		signed, err := tokens.Issue("alice", "user")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/user-only/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		app, _, _ := newAuthTestApp(t)

		req := httptest.NewRequest("GET", "/user-only/", nil)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		app, _, _ := newAuthTestApp(t)

		req := httptest.NewRequest("GET", "/user-only/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("rejects a token whose user was removed", func(t *testing.T) {
		app, store, tokens := newAuthTestApp(t)
		user := seedUser(t, store, "alice", entity.UserRoleUser)

		signed, err := tokens.Issue("alice", "user")
		require.NoError(t, err)

		// The token stays valid until expiry but the account is gone.
		store.RemoveUser(user.Id)

		req := httptest.NewRequest("GET", "/user-only/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("an admin is rejected on user-only routes", func(t *testing.T) {
		app, store, tokens := newAuthTestApp(t)
		seedUser(t, store, "root", entity.UserRoleAdmin)

		signed, err := tokens.Issue("root", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/user-only/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("a user is rejected on admin-only routes", func(t *testing.T) {
		app, store, tokens := newAuthTestApp(t)
		seedUser(t, store, "alice", entity.UserRoleUser)

		signed, err := tokens.Issue("alice", "user")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin-only/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("the live role wins over the token role", func(t *testing.T) {
		app, store, tokens := newAuthTestApp(t)
		seedUser(t, store, "alice", entity.UserRoleUser)

		// Forge a token claiming admin for a plain user.
		signed, err := tokens.Issue("alice", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/admin-only/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 403, resp.StatusCode)
	})
}
