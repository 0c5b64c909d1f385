package ingredient

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/entities"
)

type (
	IngredientRepository interface {
		// Upsert inserts ingredient, or overwrites amount, unit and raw text of
		// the room's existing ingredient with the same name. It reports the id
		// of the stored row and whether it was newly inserted.
		Upsert(ctx context.Context, ingredient *entities.Ingredient) (uuid.UUID, bool, error)
		// UpsertBatch applies Upsert to every item in one transaction and
		// returns the ids of newly inserted rows.
		UpsertBatch(ctx context.Context, ingredients []*entities.Ingredient) ([]uuid.UUID, error)
		GetIngredientByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error)
		GetIngredientsByRoom(ctx context.Context, roomID uuid.UUID) ([]*entities.Ingredient, error)
		DeleteIngredient(ctx context.Context, id uuid.UUID) error
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Upsert(ctx context.Context, ingredient *entities.Ingredient) (uuid.UUID, bool, error) {
	var (
		id       uuid.UUID
		inserted bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		id, inserted, err = upsert(tx, ingredient)
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost an insert race on the same name; the row exists now.
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			id, inserted, err = upsert(tx, ingredient)
			return err
		})
	}
	return id, inserted, err
}

func (r *ingredientRepository) UpsertBatch(ctx context.Context, ingredients []*entities.Ingredient) ([]uuid.UUID, error) {
	insertedIDs := make([]uuid.UUID, 0, len(ingredients))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ingredient := range ingredients {
			id, inserted, err := upsert(tx, ingredient)
			if err != nil {
				return err
			}
			if inserted {
				insertedIDs = append(insertedIDs, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return insertedIDs, nil
}

func upsert(tx *gorm.DB, ingredient *entities.Ingredient) (uuid.UUID, bool, error) {
	var existing entities.Ingredient
	err := tx.Where("room_id = ? AND name = ?", ingredient.RoomID, ingredient.Name).First(&existing).Error
	if err == nil {
		err = tx.Model(&entities.Ingredient{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"amount":   ingredient.Amount,
				"unit":     ingredient.Unit,
				"raw_text": ingredient.RawText,
			}).Error
		return existing.ID, false, err
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, err
	}

	if err := tx.Create(ingredient).Error; err != nil {
		return uuid.Nil, false, err
	}
	return ingredient.ID, true, nil
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetIngredientsByRoom(ctx context.Context, roomID uuid.UUID) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("added_at asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Ingredient{}).Error
}
