package domain

import (
	"kitchen-copilot/entities"
	"time"
)

var (
	MessageSuccessUpdateConstraints = "constraints updated successfully"
	MessageSuccessGetConstraints    = "success get constraints"

	MessageFailedUpdateConstraints = "failed to update constraints"
	MessageFailedGetConstraints    = "failed to get constraints"
)

type (
	// UpdateConstraintsRequest carries a partial update; nil fields are left
	// untouched on an existing record.
	UpdateConstraintsRequest struct {
		Allergies          *[]string `json:"allergies,omitempty" validate:"omitempty,max=50,dive,max=60"`
		DietFilters        *[]string `json:"diet_filters,omitempty" validate:"omitempty,max=50,dive,max=60"`
		MealType           *string   `json:"meal_type,omitempty" validate:"omitempty,max=60"`
		CookingMethods     *[]string `json:"cooking_methods,omitempty" validate:"omitempty,max=50,dive,max=60"`
		TimeLimitMins      *int      `json:"time_limit_mins,omitempty" validate:"omitempty,gt=0,lte=1440"`
		CuisinePreferences *[]string `json:"cuisine_preferences,omitempty" validate:"omitempty,max=50,dive,max=60"`
	}

	ConstraintResponse struct {
		ID                 string    `json:"id"`
		RoomID             string    `json:"room_id"`
		Allergies          []string  `json:"allergies"`
		DietFilters        []string  `json:"diet_filters"`
		MealType           *string   `json:"meal_type,omitempty"`
		CookingMethods     []string  `json:"cooking_methods"`
		TimeLimitMins      *int      `json:"time_limit_mins,omitempty"`
		CuisinePreferences []string  `json:"cuisine_preferences"`
		UpdatedAt          time.Time `json:"updated_at"`
	}
)

func NewConstraintResponse(c *entities.RoomConstraint) ConstraintResponse {
	return ConstraintResponse{
		ID:                 c.ID.String(),
		RoomID:             c.RoomID.String(),
		Allergies:          nonNil(c.Allergies),
		DietFilters:        nonNil(c.DietFilters),
		MealType:           c.MealType,
		CookingMethods:     nonNil(c.CookingMethods),
		TimeLimitMins:      c.TimeLimitMins,
		CuisinePreferences: nonNil(c.CuisinePreferences),
		UpdatedAt:          c.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
