package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"time"
)

type RoomConstraint struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	RoomID             uuid.UUID                   `gorm:"type:uuid;uniqueIndex" json:"room_id"`
	Allergies          datatypes.JSONSlice[string] `json:"allergies"`
	DietFilters        datatypes.JSONSlice[string] `json:"diet_filters"`
	MealType           *string                     `json:"meal_type,omitempty"`
	CookingMethods     datatypes.JSONSlice[string] `json:"cooking_methods"`
	TimeLimitMins      *int                        `json:"time_limit_mins,omitempty"`
	CuisinePreferences datatypes.JSONSlice[string] `json:"cuisine_preferences"`
	UpdatedAt          time.Time                   `gorm:"type:timestamp" json:"updated_at"`
}

func (RoomConstraint) TableName() string {
	return "room_constraints"
}

func (c *RoomConstraint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
