package domain

import (
	"errors"
	"fmt"
	"kitchen-copilot/entities"
	"time"
)

const (
	DefaultRecipeCount          = 10
	MaxRecipeCount              = 20
	DefaultEstimatedTimeMinutes = 30
	DefaultServings             = 4
)

var (
	MessageSuccessGenerateRecipes = "recipes generated successfully"
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSelectRecipe    = "recipe selected successfully"

	MessageFailedGenerateRecipes = "failed to generate recipes"
	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSelectRecipe    = "failed to select recipe"

	ErrRecipeNotFound    = fmt.Errorf("recipe %w", ErrNotFound)
	ErrGenerationFailed  = errors.New("recipe generation failed")
	ErrMalformedResponse = errors.New("malformed generation response")
	ErrNoValidRecipes    = errors.New("no valid recipes generated")
)

type (
	GenerateRecipesRequest struct {
		Count int `json:"count,omitempty" validate:"omitempty,min=1,max=20"`
	}

	GenerateRecipesResponse struct {
		RecipeIDs []string `json:"recipe_ids"`
		Count     int      `json:"count"`
	}

	SelectRecipeRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	SelectRecipeResponse struct {
		RecipeID string `json:"recipe_id"`
	}

	RecipeIngredient struct {
		Name        string `json:"name"`
		Amount      string `json:"amount,omitempty"`
		Preparation string `json:"preparation,omitempty"`
	}

	AIMetadata struct {
		Model            string `json:"model"`
		PromptTokens     *int   `json:"prompt_tokens,omitempty"`
		CompletionTokens *int   `json:"completion_tokens,omitempty"`
	}

	RecipeResponse struct {
		ID                   string             `json:"id"`
		RoomID               string             `json:"room_id"`
		Title                string             `json:"title"`
		Description          string             `json:"description"`
		Ingredients          []RecipeIngredient `json:"ingredients"`
		Steps                []string           `json:"steps"`
		Tags                 []string           `json:"tags"`
		EstimatedTimeMinutes int                `json:"estimated_time_minutes"`
		Servings             int                `json:"servings"`
		SensitivityFlags     []string           `json:"sensitivity_flags"`
		AIMetadata           *AIMetadata        `json:"ai_metadata,omitempty"`
		GeneratedAt          time.Time          `json:"generated_at"`
	}
)

func NewRecipeResponse(r *entities.Recipe) RecipeResponse {
	ingredients := make([]RecipeIngredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, RecipeIngredient{
			Name:        ing.Name,
			Amount:      ing.Amount,
			Preparation: ing.Preparation,
		})
	}

	res := RecipeResponse{
		ID:                   r.ID.String(),
		RoomID:               r.RoomID.String(),
		Title:                r.Title,
		Description:          r.Description,
		Ingredients:          ingredients,
		Steps:                nonNil(r.Steps),
		Tags:                 nonNil(r.Tags),
		EstimatedTimeMinutes: r.EstimatedTimeMinutes,
		Servings:             r.Servings,
		SensitivityFlags:     nonNil(r.SensitivityFlags),
		GeneratedAt:          r.CreatedAt,
	}
	if r.GeneratedBy != "" {
		res.AIMetadata = &AIMetadata{
			Model:            r.GeneratedBy,
			PromptTokens:     r.PromptTokens,
			CompletionTokens: r.CompletionTokens,
		}
	}
	return res
}
