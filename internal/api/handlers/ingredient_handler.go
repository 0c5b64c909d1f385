package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/api/presenters"
	"kitchen-copilot/pkg/ingredient"
)

type (
	IngredientHandler interface {
		AddIngredient(c *fiber.Ctx) error
		AddIngredientsBatch(c *fiber.Ctx) error
		ScanIngredients(c *fiber.Ctx) error
		RemoveIngredient(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService, validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func (h *ingredientHandler) AddIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if req.DetectedFrom == "" {
		req.DetectedFrom = domain.SourceText
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddIngredient, err)
	}

	res, err := h.ingredientService.AddIngredient(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedAddIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddIngredient)
}

func (h *ingredientHandler) AddIngredientsBatch(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AddIngredientsBatchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddIngredients, err)
	}

	res, err := h.ingredientService.AddIngredientsBatch(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedAddIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddIngredients)
}

func (h *ingredientHandler) ScanIngredients(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req := domain.ScanIngredientsRequest{Image: image}

	res, err := h.ingredientService.ScanIngredients(c.Context(), c.Params("id"), req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedScanIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessScanIngredients)
}

func (h *ingredientHandler) RemoveIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.ingredientService.RemoveIngredient(c.Context(), c.Params("id"), userID); err != nil {
		return failure(c, domain.MessageFailedRemoveIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveIngredient)
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetIngredients(c.Context(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}
