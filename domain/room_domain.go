package domain

import (
	"fmt"
	"kitchen-copilot/entities"
	"time"
)

var (
	MessageSuccessCreateRoom      = "room created successfully"
	MessageSuccessJoinRoom        = "joined room successfully"
	MessageSuccessGetRoom         = "success get room"
	MessageSuccessGetParticipants = "success get participants"
	MessageSuccessInvite          = "invitation sent successfully"

	MessageFailedCreateRoom      = "failed to create room"
	MessageFailedJoinRoom        = "failed to join room"
	MessageFailedGetRoom         = "failed to get room"
	MessageFailedGetParticipants = "failed to get participants"
	MessageFailedInvite          = "failed to send invitation"

	ErrRoomNotFound = fmt.Errorf("room %w", ErrNotFound)
)

type (
	CreateRoomRequest struct {
		Name      string `json:"name" validate:"required,notblank,max=120"`
		OwnerName string `json:"owner_name" validate:"required,notblank,max=80"`
	}

	JoinRoomRequest struct {
		UserName string `json:"user_name" validate:"required,notblank,max=80"`
	}

	InviteRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	RoomResponse struct {
		ID               string    `json:"id"`
		Name             string    `json:"name"`
		OwnerID          string    `json:"owner_id"`
		OwnerName        string    `json:"owner_name"`
		Status           string    `json:"status"`
		SelectedRecipeID string    `json:"selected_recipe_id,omitempty"`
		CreatedAt        time.Time `json:"created_at"`
	}

	ParticipantResponse struct {
		ID       string    `json:"id"`
		RoomID   string    `json:"room_id"`
		UserID   string    `json:"user_id"`
		UserName string    `json:"user_name"`
		JoinedAt time.Time `json:"joined_at"`
	}

	RoomDetailResponse struct {
		RoomResponse
		Participants []ParticipantResponse `json:"participants"`
		Ingredients  []IngredientResponse  `json:"ingredients"`
		Constraints  *ConstraintResponse   `json:"constraints"`
		Recipes      []RecipeResponse      `json:"recipes"`
	}
)

func NewRoomResponse(room *entities.Room) RoomResponse {
	res := RoomResponse{
		ID:        room.ID.String(),
		Name:      room.Name,
		OwnerID:   room.OwnerID,
		OwnerName: room.OwnerName,
		Status:    room.Status,
		CreatedAt: room.CreatedAt,
	}
	if room.SelectedRecipeID != nil {
		res.SelectedRecipeID = room.SelectedRecipeID.String()
	}
	return res
}

func NewParticipantResponse(p *entities.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:       p.ID.String(),
		RoomID:   p.RoomID.String(),
		UserID:   p.UserID,
		UserName: p.UserName,
		JoinedAt: p.JoinedAt,
	}
}

func NewRoomDetailResponse(room *entities.Room) RoomDetailResponse {
	res := RoomDetailResponse{
		RoomResponse: NewRoomResponse(room),
		Participants: make([]ParticipantResponse, 0, len(room.Participants)),
		Ingredients:  make([]IngredientResponse, 0, len(room.Ingredients)),
		Recipes:      make([]RecipeResponse, 0, len(room.Recipes)),
	}
	for _, p := range room.Participants {
		res.Participants = append(res.Participants, NewParticipantResponse(p))
	}
	for _, i := range room.Ingredients {
		res.Ingredients = append(res.Ingredients, NewIngredientResponse(i))
	}
	if room.Constraint != nil {
		c := NewConstraintResponse(room.Constraint)
		res.Constraints = &c
	}
	for _, r := range room.Recipes {
		res.Recipes = append(res.Recipes, NewRecipeResponse(r))
	}
	return res
}
