package domain

import (
	"errors"
	"fmt"
	"kitchen-copilot/entities"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddIngredient    = "ingredient added successfully"
	MessageSuccessAddIngredients   = "ingredients added successfully"
	MessageSuccessRemoveIngredient = "ingredient removed successfully"
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessScanIngredients  = "ingredients detected successfully"

	MessageFailedAddIngredient    = "failed to add ingredient"
	MessageFailedAddIngredients   = "failed to add ingredients"
	MessageFailedRemoveIngredient = "failed to remove ingredient"
	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedScanIngredients  = "failed to detect ingredients from image"

	ErrIngredientNotFound = fmt.Errorf("ingredient %w", ErrNotFound)
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrNoIngredients      = errors.New("no ingredients detected")
	ErrEmptyIngredient    = errors.New("ingredient name is empty")
)

type (
	AddIngredientRequest struct {
		Name         string   `json:"name" validate:"required,notblank,max=120"`
		Amount       *string  `json:"amount,omitempty" validate:"omitempty,max=40"`
		Unit         *string  `json:"unit,omitempty" validate:"omitempty,max=40"`
		RawText      string   `json:"raw_text" validate:"max=500"`
		DetectedFrom string   `json:"detected_from" validate:"required,oneof=text speech image"`
		Confidence   *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	}

	AddIngredientsBatchRequest struct {
		Ingredients []AddIngredientRequest `json:"ingredients" validate:"required,min=1,max=100,dive"`
	}

	ScanIngredientsRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	IngredientResponse struct {
		ID           string    `json:"id"`
		RoomID       string    `json:"room_id"`
		UserID       string    `json:"user_id"`
		UserName     string    `json:"user_name"`
		Name         string    `json:"name"`
		Amount       *string   `json:"amount,omitempty"`
		Unit         *string   `json:"unit,omitempty"`
		RawText      string    `json:"raw_text"`
		DetectedFrom string    `json:"detected_from"`
		Confidence   *float64  `json:"confidence,omitempty"`
		AddedAt      time.Time `json:"added_at"`
	}

	AddIngredientResponse struct {
		ID string `json:"id"`
	}

	AddIngredientsBatchResponse struct {
		IDs []string `json:"ids"`
	}

	ScanIngredientsResponse struct {
		ImageURL    string                 `json:"image_url"`
		Detected    []AddIngredientRequest `json:"detected"`
		InsertedIDs []string               `json:"inserted_ids"`
	}
)

func NewIngredientResponse(i *entities.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:           i.ID.String(),
		RoomID:       i.RoomID.String(),
		UserID:       i.UserID,
		UserName:     i.UserName,
		Name:         i.Name,
		Amount:       i.Amount,
		Unit:         i.Unit,
		RawText:      i.RawText,
		DetectedFrom: i.DetectedFrom,
		Confidence:   i.Confidence,
		AddedAt:      i.AddedAt,
	}
}
