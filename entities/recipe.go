package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RecipeIngredient struct {
	Name        string `json:"name"`
	Amount      string `json:"amount,omitempty"`
	Preparation string `json:"preparation,omitempty"`
}

type Recipe struct {
	ID                   uuid.UUID                             `gorm:"type:uuid;primary_key" json:"id"`
	RoomID               uuid.UUID                             `gorm:"type:uuid;index" json:"room_id"`
	Title                string                                `json:"title"`
	Description          string                                `gorm:"type:text" json:"description"`
	Ingredients          datatypes.JSONSlice[RecipeIngredient] `json:"ingredients"`
	Steps                datatypes.JSONSlice[string]           `json:"steps"`
	Tags                 datatypes.JSONSlice[string]           `json:"tags"`
	EstimatedTimeMinutes int                                   `json:"estimated_time_minutes"`
	Servings             int                                   `json:"servings"`
	SensitivityFlags     datatypes.JSONSlice[string]           `json:"sensitivity_flags"`

	// Generation metadata, empty for recipes not produced by a model.
	GeneratedBy      string `json:"generated_by,omitempty"`
	PromptTokens     *int   `json:"prompt_tokens,omitempty"`
	CompletionTokens *int   `json:"completion_tokens,omitempty"`

	Timestamp
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
