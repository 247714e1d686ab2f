package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// fieldErrors flattens validator output into a field -> message map so the
// client can annotate the offending inputs.
func fieldErrors(err error) map[string]string {
	messages := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["request"] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return messages
}

// validationFailed answers 422 with the per-field messages and the submitted
// values, so the client can re-render the form with the user's prior input.
func validationFailed(c *fiber.Ctx, errs map[string]string, values interface{}) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errs,
		"values":  values,
	})
}
