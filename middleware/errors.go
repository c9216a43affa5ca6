package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"practicehub/errs"
	"practicehub/utils"
)

func errorStatus(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return errs.StatusCode(err)
}

// ErrorHandler writes every error returned by a handler as the JSON error
// envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return utils.RespondWithError(c, fe.Code, fe.Message)
	}
	return utils.RespondWithError(c, errs.StatusCode(err), errs.PublicMessage(err))
}
