package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/utils"
	"kitchen-copilot/internal/utils/storage"
)

func TestErrorStatus(t *testing.T) {
	utils.InitValidator()
	validationErr := utils.Validate.Struct(domain.InviteRequest{Email: "not-an-email"})

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", domain.ErrNotAuthenticated, fiber.StatusUnauthorized},
		{"not participant", domain.ErrNotParticipant, fiber.StatusForbidden},
		{"not owner", domain.ErrNotOwner, fiber.StatusForbidden},
		{"room not found", domain.ErrRoomNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrRecipeNotFound), fiber.StatusNotFound},
		{"invalid state", domain.ErrInvalidState, fiber.StatusConflict},
		{"generation failed", domain.ErrGenerationFailed, fiber.StatusBadGateway},
		{"malformed", domain.ErrMalformedResponse, fiber.StatusBadGateway},
		{"no valid recipes", domain.ErrNoValidRecipes, fiber.StatusUnprocessableEntity},
		{"no ingredients", domain.ErrNoIngredients, fiber.StatusUnprocessableEntity},
		{"empty ingredient", domain.ErrEmptyIngredient, fiber.StatusBadRequest},
		{"bad image", domain.ErrInvalidImageFormat, fiber.StatusBadRequest},
		{"file type", storage.ErrFileTypeNotAllowed, fiber.StatusBadRequest},
		{"file too large", fmt.Errorf("%w: 11534336 bytes", storage.ErrFileTooLarge), fiber.StatusBadRequest},
		{"validation", validationErr, fiber.StatusBadRequest},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errorStatus(tc.err))
		})
	}
}
