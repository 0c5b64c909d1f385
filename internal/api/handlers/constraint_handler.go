package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/api/presenters"
	"kitchen-copilot/pkg/constraint"
)

type (
	ConstraintHandler interface {
		UpdateConstraints(c *fiber.Ctx) error
		GetConstraints(c *fiber.Ctx) error
	}

	constraintHandler struct {
		constraintService constraint.ConstraintService
		validator         *validator.Validate
	}
)

func NewConstraintHandler(constraintService constraint.ConstraintService, validator *validator.Validate) ConstraintHandler {
	return &constraintHandler{
		constraintService: constraintService,
		validator:         validator,
	}
}

func (h *constraintHandler) UpdateConstraints(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateConstraintsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateConstraints, err)
	}

	res, err := h.constraintService.UpdateConstraints(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateConstraints, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateConstraints)
}

func (h *constraintHandler) GetConstraints(c *fiber.Ctx) error {
	res, err := h.constraintService.GetConstraints(c.Context(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetConstraints, err)
	}

	// A room without constraints answers with null data.
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetConstraints)
}
