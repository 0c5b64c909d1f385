package recipe

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/domain"
	"kitchen-copilot/entities"
	"time"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipesByRoom(ctx context.Context, roomID uuid.UUID) ([]*entities.Recipe, error)
		// SaveGenerated moves the room from one status to another and inserts
		// recipes in one transaction. domain.ErrInvalidState when the room is
		// no longer in from.
		SaveGenerated(ctx context.Context, roomID uuid.UUID, recipes []*entities.Recipe, from string, status string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByRoom(ctx context.Context, roomID uuid.UUID) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) SaveGenerated(ctx context.Context, roomID uuid.UUID, recipes []*entities.Recipe, from string, status string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Room{}).
			Where("id = ? AND status = ?", roomID, from).
			Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidState
		}

		if len(recipes) == 0 {
			return nil
		}
		return tx.Create(&recipes).Error
	})
}
