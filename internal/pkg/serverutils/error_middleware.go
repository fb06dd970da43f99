package serverutils

import (
	"report-service-be/internal/apperror"
	"report-service-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the apperror taxonomy onto HTTP statuses and a
// uniform error envelope. Unclassified errors become 500 without leaking the
// underlying cause to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"

		switch apperror.KindOf(err) {
		case apperror.KindValidation:
			status = fiber.StatusBadRequest
			message = err.Error()
		case apperror.KindNotFound:
			status = fiber.StatusNotFound
			message = err.Error()
		case apperror.KindPreconditionFailed:
			status = fiber.StatusPreconditionFailed
			message = err.Error()
		case apperror.KindExternalService:
			status = fiber.StatusBadGateway
			message = "Upstream service failure"
		case apperror.KindStorage:
			status = fiber.StatusInternalServerError
			message = "Storage failure"
		default:
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
				message = fiberErr.Message
			}
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(status).JSON(fiber.Map{"message": message})
	}
}
