package serverutils

import (
	"errors"
	"fmt"

	"coreclad-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders any error that escapes a handler in the response envelope.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse(verr.Fields))
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			code = ferr.Code
			message = ferr.Message
		} else {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"error":  err.Error(),
				"method": ctx.Method(),
				"path":   ctx.Path(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// ErrorHandlerMiddleware turns panics into 500 envelopes.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("HTTP", "Recovered from panic", map[string]interface{}{
					"panic":  fmt.Sprint(r),
					"method": ctx.Method(),
					"path":   ctx.Path(),
				})
				err = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
			}
		}()
		return ctx.Next()
	}
}
