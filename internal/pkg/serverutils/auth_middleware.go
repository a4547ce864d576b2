package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"notes-api-be/internal/entity"
	"notes-api-be/internal/pkg/apperror"
	"notes-api-be/internal/pkg/token"
	"notes-api-be/internal/repository/specification"
	"notes-api-be/internal/repository/unitofwork"
)

// CurrentUserKey is the locals slot holding the resolved user entity.
const CurrentUserKey = "current_user"

type AuthMiddleware struct {
	tokens     *token.Service
	uowFactory unitofwork.RepositoryFactory
}

func NewAuthMiddleware(tokens *token.Service, uowFactory unitofwork.RepositoryFactory) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:     tokens,
		uowFactory: uowFactory,
	}
}

// Authenticate resolves the bearer token to a live user record. The
// token's role claim is a hint only: the user is reloaded every request
// so role changes and removed accounts take effect before expiry.
func (m *AuthMiddleware) Authenticate(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return apperror.Unauthorized("missing bearer token")
	}

	claims, err := m.tokens.Verify(authHeader[7:])
	if err != nil {
		return apperror.Unauthorized("invalid or expired token")
	}

	uow := m.uowFactory.NewUnitOfWork(ctx.Context())
	user, err := uow.UserRepository().FindOne(ctx.Context(), specification.ByUsername{Username: claims.Subject})
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		// Valid signature but the subject no longer exists.
		return apperror.Unauthorized("invalid or expired token")
	}

	ctx.Locals(CurrentUserKey, user)
	return ctx.Next()
}

// RequireRole enforces an exact role match. The two roles are
// independent capabilities: an admin is rejected on user-only routes.
func (m *AuthMiddleware) RequireRole(role entity.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CurrentUser(ctx)
		if user == nil {
			return apperror.Unauthorized("missing bearer token")
		}
		if user.Role != role {
			return apperror.Forbidden("insufficient role")
		}
		return ctx.Next()
	}
}

func CurrentUser(ctx *fiber.Ctx) *entity.User {
	user, _ := ctx.Locals(CurrentUserKey).(*entity.User)
	return user
}
