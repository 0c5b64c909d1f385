package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/api/presenters"
	"kitchen-copilot/pkg/vote"
)

type (
	VoteHandler interface {
		Vote(c *fiber.Ctx) error
		GetRecipeVotes(c *fiber.Ctx) error
		GetRoomVotes(c *fiber.Ctx) error
		GetLeaderboard(c *fiber.Ctx) error
	}

	voteHandler struct {
		voteService vote.VoteService
		validator   *validator.Validate
	}
)

func NewVoteHandler(voteService vote.VoteService, validator *validator.Validate) VoteHandler {
	return &voteHandler{
		voteService: voteService,
		validator:   validator,
	}
}

func (h *voteHandler) Vote(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.VoteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVote, err)
	}

	res, err := h.voteService.Vote(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedVote, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVote)
}

func (h *voteHandler) GetRecipeVotes(c *fiber.Ctx) error {
	res, err := h.voteService.GetRecipeVotes(c.Context(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetVotes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetVotes)
}

func (h *voteHandler) GetRoomVotes(c *fiber.Ctx) error {
	res, err := h.voteService.GetRoomVotes(c.Context(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetVotes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetVotes)
}

func (h *voteHandler) GetLeaderboard(c *fiber.Ctx) error {
	res, err := h.voteService.GetLeaderboard(c.Context(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetLeaderboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLeaderboard)
}
