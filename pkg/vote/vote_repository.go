package vote

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/entities"
)

type (
	VoteRepository interface {
		// ToggleVote removes the user's vote on the recipe if present and adds
		// it otherwise. It reports whether a vote now exists.
		ToggleVote(ctx context.Context, vote *entities.Vote) (bool, error)
		GetVotesByRecipe(ctx context.Context, recipeID uuid.UUID) ([]*entities.Vote, error)
		GetVotesByRoom(ctx context.Context, roomID uuid.UUID) ([]*entities.Vote, error)
	}

	voteRepository struct {
		db *gorm.DB
	}
)

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) ToggleVote(ctx context.Context, vote *entities.Vote) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", vote.UserID, vote.RecipeID).Delete(&entities.Vote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent request from the same user already added it.
		return true, nil
	}
	return added, err
}

func (r *voteRepository) GetVotesByRecipe(ctx context.Context, recipeID uuid.UUID) ([]*entities.Vote, error) {
	var votes []*entities.Vote
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("voted_at asc").
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *voteRepository) GetVotesByRoom(ctx context.Context, roomID uuid.UUID) ([]*entities.Vote, error) {
	var votes []*entities.Vote
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("voted_at asc").
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}
