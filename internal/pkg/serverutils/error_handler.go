package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"notes-api-be/internal/pkg/apperror"
	"notes-api-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware maps errors escaping the handlers onto the
// response envelope. Internal causes go to the operational log only;
// the caller always gets the taxonomy message.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.As(err); ok {
			if appErr.Code >= fiber.StatusInternalServerError {
				log.Error("http", "request failed", map[string]interface{}{
					"method": ctx.Method(),
					"path":   ctx.Path(),
					"error":  appErr.Error(),
				})
			}
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
