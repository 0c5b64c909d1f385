package recipe

import (
	"context"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/domain"
	"kitchen-copilot/entities"
	"kitchen-copilot/pkg/constraint"
	"kitchen-copilot/pkg/ingredient"
	"kitchen-copilot/pkg/llm"
	"kitchen-copilot/pkg/realtime"
	"kitchen-copilot/pkg/room"
	"time"
)

const (
	generationTemperature = 0.8
	rollbackTimeout       = 10 * time.Second
)

var roomStatuses = map[string]bool{
	domain.RoomStatusDraft:      true,
	domain.RoomStatusGenerating: true,
	domain.RoomStatusVoting:     true,
	domain.RoomStatusSelected:   true,
}

// A room cannot be closed while a generation run owns it.
var selectableStatuses = []string{
	domain.RoomStatusDraft,
	domain.RoomStatusVoting,
	domain.RoomStatusSelected,
}

type (
	RecipeService interface {
		GenerateRecipes(ctx context.Context, roomID string, req domain.GenerateRecipesRequest, userID string) (domain.GenerateRecipesResponse, error)
		GetRecipe(ctx context.Context, recipeID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, roomID string) ([]domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, roomID string, candidate Candidate, meta *domain.AIMetadata) (string, error)
		UpdateRoomStatus(ctx context.Context, roomID string, status string) error
		SelectRecipe(ctx context.Context, roomID string, req domain.SelectRecipeRequest, userID string) (domain.SelectRecipeResponse, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		roomRepository       room.RoomRepository
		ingredientRepository ingredient.IngredientRepository
		constraintRepository constraint.ConstraintRepository
		generator            llm.Generator
		publisher            realtime.Publisher
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	roomRepository room.RoomRepository,
	ingredientRepository ingredient.IngredientRepository,
	constraintRepository constraint.ConstraintRepository,
	generator llm.Generator,
	publisher realtime.Publisher,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		roomRepository:       roomRepository,
		ingredientRepository: ingredientRepository,
		constraintRepository: constraintRepository,
		generator:            generator,
		publisher:            publisher,
	}
}

func (s *recipeService) GenerateRecipes(ctx context.Context, roomID string, req domain.GenerateRecipesRequest, userID string) (domain.GenerateRecipesResponse, error) {
	r, _, err := room.Authorize(ctx, s.roomRepository, roomID, userID)
	if err != nil {
		return domain.GenerateRecipesResponse{}, err
	}

	count := req.Count
	if count <= 0 {
		count = domain.DefaultRecipeCount
	} else if count > domain.MaxRecipeCount {
		count = domain.MaxRecipeCount
	}

	ingredients, err := s.ingredientRepository.GetIngredientsByRoom(ctx, r.ID)
	if err != nil {
		return domain.GenerateRecipesResponse{}, err
	}
	roomConstraint, err := s.constraintRepository.GetConstraintByRoom(ctx, r.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GenerateRecipesResponse{}, err
		}
		roomConstraint = nil
	}

	ok, err := s.roomRepository.TransitionStatus(ctx, r.ID,
		[]string{domain.RoomStatusDraft, domain.RoomStatusVoting}, domain.RoomStatusGenerating)
	if err != nil {
		return domain.GenerateRecipesResponse{}, err
	}
	if !ok {
		return domain.GenerateRecipesResponse{}, domain.ErrInvalidState
	}
	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventRoomUpdated)

	ids, err := s.generate(ctx, r.ID, ingredients, roomConstraint, count)
	if err != nil {
		s.rollback(ctx, r.ID)
		log.Errorw("recipe generation failed", "room_id", r.ID.String(), "error", err)
		return domain.GenerateRecipesResponse{}, err
	}

	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventRecipesUpdated)
	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventRoomUpdated)
	log.Infow("recipes generated", "room_id", r.ID.String(), "count", len(ids))

	return domain.GenerateRecipesResponse{RecipeIDs: ids, Count: len(ids)}, nil
}

// generate runs while the room is in the generating state. Any error it
// returns must be followed by a rollback.
func (s *recipeService) generate(ctx context.Context, roomID uuid.UUID, ingredients []*entities.Ingredient, roomConstraint *entities.RoomConstraint, count int) ([]string, error) {
	resp, err := s.generator.Generate(ctx, llm.Request{
		System:      systemPrompt,
		User:        BuildUserPrompt(RenderIngredients(ingredients), roomConstraint, count),
		Temperature: generationTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	if resp == nil || resp.Content == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, llm.ErrEmptyResponse)
	}

	candidates, err := ParseCandidates(resp.Content)
	if err != nil {
		return nil, err
	}

	var allergies []string
	if roomConstraint != nil {
		allergies = roomConstraint.Allergies
	}
	valid := ValidateCandidates(candidates, allergies, count)
	if len(valid) == 0 {
		return nil, domain.ErrNoValidRecipes
	}

	meta := &domain.AIMetadata{
		Model:            resp.Model,
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
	}
	now := time.Now()
	recipes := make([]*entities.Recipe, 0, len(valid))
	for i, candidate := range valid {
		recipe := newRecipe(roomID, candidate, meta)
		// Spread timestamps so listing keeps the model's order.
		recipe.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		recipe.UpdatedAt = recipe.CreatedAt
		recipes = append(recipes, recipe)
	}

	if err := s.recipeRepository.SaveGenerated(ctx, roomID, recipes, domain.RoomStatusGenerating, domain.RoomStatusVoting); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID.String())
	}
	return ids, nil
}

// rollback returns a generating room to draft even when the request was
// cancelled. A room that already left generating is not touched.
func (s *recipeService) rollback(ctx context.Context, roomID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	ok, err := s.roomRepository.TransitionStatus(ctx, roomID, []string{domain.RoomStatusGenerating}, domain.RoomStatusDraft)
	if err != nil {
		log.Errorw("failed to roll back room status", "room_id", roomID.String(), "error", err)
		return
	}
	if !ok {
		log.Infow("room left generating before rollback", "room_id", roomID.String())
		return
	}
	realtime.Notify(ctx, s.publisher, roomID.String(), realtime.EventRoomUpdated)
}

func newRecipe(roomID uuid.UUID, candidate Candidate, meta *domain.AIMetadata) *entities.Recipe {
	ingredients := make([]entities.RecipeIngredient, 0, len(candidate.Ingredients))
	for _, ing := range candidate.Ingredients {
		ingredients = append(ingredients, entities.RecipeIngredient{
			Name:        ing.Name,
			Amount:      ing.Amount,
			Preparation: ing.Preparation,
		})
	}

	recipe := &entities.Recipe{
		ID:                   uuid.New(),
		RoomID:               roomID,
		Title:                candidate.Title,
		Description:          candidate.Description,
		Ingredients:          ingredients,
		Steps:                orEmpty(candidate.Steps),
		Tags:                 orEmpty(candidate.Tags),
		EstimatedTimeMinutes: candidate.EstimatedTimeMinutes,
		Servings:             candidate.Servings,
		SensitivityFlags:     orEmpty(candidate.SensitivityFlags),
	}
	if recipe.EstimatedTimeMinutes <= 0 {
		recipe.EstimatedTimeMinutes = domain.DefaultEstimatedTimeMinutes
	}
	if recipe.Servings <= 0 {
		recipe.Servings = domain.DefaultServings
	}
	if meta != nil {
		recipe.GeneratedBy = meta.Model
		recipe.PromptTokens = meta.PromptTokens
		recipe.CompletionTokens = meta.CompletionTokens
	}
	return recipe
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID string) (domain.RecipeResponse, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return domain.NewRecipeResponse(recipe), nil
}

func (s *recipeService) findRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) GetRecipes(ctx context.Context, roomID string) ([]domain.RecipeResponse, error) {
	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipeRepository.GetRecipesByRoom(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, domain.NewRecipeResponse(recipe))
	}
	return result, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, roomID string, candidate Candidate, meta *domain.AIMetadata) (string, error) {
	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return "", err
	}

	recipe := newRecipe(r.ID, candidate, meta)
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return "", err
	}

	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventRecipesUpdated)
	return recipe.ID.String(), nil
}

func (s *recipeService) UpdateRoomStatus(ctx context.Context, roomID string, status string) error {
	if !roomStatuses[status] {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidState, status)
	}

	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return err
	}

	if err := s.roomRepository.UpdateStatus(ctx, r.ID, status); err != nil {
		return err
	}

	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventRoomUpdated)
	return nil
}

func (s *recipeService) SelectRecipe(ctx context.Context, roomID string, req domain.SelectRecipeRequest, userID string) (domain.SelectRecipeResponse, error) {
	if userID == "" {
		return domain.SelectRecipeResponse{}, domain.ErrNotAuthenticated
	}

	r, err := room.FindRoom(ctx, s.roomRepository, roomID)
	if err != nil {
		return domain.SelectRecipeResponse{}, err
	}
	if r.OwnerID != userID {
		return domain.SelectRecipeResponse{}, domain.ErrNotOwner
	}

	recipe, err := s.findRecipe(ctx, req.RecipeID)
	if err != nil {
		return domain.SelectRecipeResponse{}, err
	}
	if recipe.RoomID != r.ID {
		return domain.SelectRecipeResponse{}, domain.ErrRecipeNotFound
	}

	ok, err := s.roomRepository.SelectRecipe(ctx, r.ID, recipe.ID, selectableStatuses, domain.RoomStatusSelected)
	if err != nil {
		return domain.SelectRecipeResponse{}, err
	}
	if !ok {
		return domain.SelectRecipeResponse{}, domain.ErrInvalidState
	}

	realtime.Notify(ctx, s.publisher, r.ID.String(), realtime.EventRoomUpdated)
	log.Infow("recipe selected", "room_id", r.ID.String(), "recipe_id", recipe.ID.String())
	return domain.SelectRecipeResponse{RecipeID: recipe.ID.String()}, nil
}
