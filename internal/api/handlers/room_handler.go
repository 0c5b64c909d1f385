package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"kitchen-copilot/domain"
	"kitchen-copilot/internal/api/presenters"
	"kitchen-copilot/pkg/room"
)

type (
	RoomHandler interface {
		CreateRoom(c *fiber.Ctx) error
		JoinRoom(c *fiber.Ctx) error
		GetRoom(c *fiber.Ctx) error
		GetParticipants(c *fiber.Ctx) error
		InviteByEmail(c *fiber.Ctx) error
	}

	roomHandler struct {
		roomService room.RoomService
		validator   *validator.Validate
	}
)

func NewRoomHandler(roomService room.RoomService, validator *validator.Validate) RoomHandler {
	return &roomHandler{
		roomService: roomService,
		validator:   validator,
	}
}

func (h *roomHandler) CreateRoom(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateRoomRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if req.OwnerName == "" {
		req.OwnerName, _ = c.Locals("user_name").(string)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRoom, err)
	}

	res, err := h.roomService.CreateRoom(c.Context(), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedCreateRoom, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRoom)
}

func (h *roomHandler) JoinRoom(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	roomID := c.Params("id")
	req := new(domain.JoinRoomRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if req.UserName == "" {
		req.UserName, _ = c.Locals("user_name").(string)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedJoinRoom, err)
	}

	res, err := h.roomService.JoinRoom(c.Context(), roomID, *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedJoinRoom, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessJoinRoom)
}

func (h *roomHandler) GetRoom(c *fiber.Ctx) error {
	res, err := h.roomService.GetRoom(c.Context(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetRoom, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRoom)
}

func (h *roomHandler) GetParticipants(c *fiber.Ctx) error {
	res, err := h.roomService.GetParticipants(c.Context(), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetParticipants, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetParticipants)
}

func (h *roomHandler) InviteByEmail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.InviteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInvite, err)
	}

	if err := h.roomService.InviteByEmail(c.Context(), c.Params("id"), *req, userID); err != nil {
		return failure(c, domain.MessageFailedInvite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessInvite)
}
