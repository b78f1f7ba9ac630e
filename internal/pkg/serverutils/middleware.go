package serverutils

import (
	"errors"
	"log"

	"ai-chat-rag-be/internal/repository/contract"
	"ai-chat-rag-be/pkg/pipeline"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping handlers into the
// common response envelope. Pipeline failures keep their stage name in
// the message so callers can tell which step broke.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, validationErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var execErr *pipeline.ExecutionError
		if errors.As(err, &execErr) {
			log.Printf("[ERROR] Pipeline failure at stage %s: %v", execErr.Stage, execErr.Err)
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, execErr.Error()))
		}

		var storageErr *contract.StorageError
		if errors.As(err, &storageErr) {
			log.Printf("[ERROR] Storage failure during %s: %v", storageErr.Op, storageErr.Err)
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Storage operation failed"))
		}

		log.Printf("[ERROR] Unhandled error: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
	}
}
