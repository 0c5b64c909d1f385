package handlers

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/api/presenters"
	"kitchen-copilot/internal/utils/storage"
)

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrGenerationFailed), errors.Is(err, domain.ErrMalformedResponse):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrNoValidRecipes), errors.Is(err, domain.ErrNoIngredients):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyIngredient),
		errors.Is(err, domain.ErrInvalidImageFormat),
		errors.Is(err, storage.ErrFileTypeNotAllowed),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func failure(c *fiber.Ctx, message string, err error) error {
	return presenters.ErrorResponse(c, errorStatus(err), message, err)
}
