package handlers

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/omar99elnemr/summarizeit/errors"
	"github.com/sirupsen/logrus"
)

// ErrorHandler maps application errors onto JSON responses. Domain errors
// (no captions, fetch failures, summarization failures) keep their kind so
// the front-end can display a specific message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	kind := errors.KindInternal
	message := "Internal Server Error"

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		code = appErr.Code
		kind = appErr.Kind
		message = appErr.Message
	}

	logrus.WithFields(logrus.Fields{
		"request_id": c.Get("X-Request-ID"),
		"path":       c.Path(),
		"method":     c.Method(),
		"status":     code,
		"kind":       kind,
	}).WithError(err).Error("Request error")

	return c.Status(code).JSON(fiber.Map{
		"success":    false,
		"error":      message,
		"kind":       kind,
		"request_id": c.Get("X-Request-ID"),
	})
}
