package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fiber error handler. fiber.Error statuses
// pass through; anything else becomes an opaque 500.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(FailResponse(fiberErr.Message))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(FailResponse("internal server error"))
}
