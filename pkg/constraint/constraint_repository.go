package constraint

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/entities"
)

type (
	ConstraintRepository interface {
		GetConstraintByRoom(ctx context.Context, roomID uuid.UUID) (*entities.RoomConstraint, error)
		CreateConstraint(ctx context.Context, constraint *entities.RoomConstraint) error
		// PatchConstraint writes only the given columns of the room's record and
		// returns the stored row. gorm.ErrRecordNotFound when the room has none.
		PatchConstraint(ctx context.Context, roomID uuid.UUID, fields map[string]interface{}) (*entities.RoomConstraint, error)
	}

	constraintRepository struct {
		db *gorm.DB
	}
)

func NewConstraintRepository(db *gorm.DB) ConstraintRepository {
	return &constraintRepository{db: db}
}

func (r *constraintRepository) GetConstraintByRoom(ctx context.Context, roomID uuid.UUID) (*entities.RoomConstraint, error) {
	var constraint entities.RoomConstraint
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).First(&constraint).Error; err != nil {
		return nil, err
	}
	return &constraint, nil
}

func (r *constraintRepository) CreateConstraint(ctx context.Context, constraint *entities.RoomConstraint) error {
	return r.db.WithContext(ctx).Create(constraint).Error
}

func (r *constraintRepository) PatchConstraint(ctx context.Context, roomID uuid.UUID, fields map[string]interface{}) (*entities.RoomConstraint, error) {
	var constraint entities.RoomConstraint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.RoomConstraint{}).Where("room_id = ?", roomID).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("room_id = ?", roomID).First(&constraint).Error
	})
	if err != nil {
		return nil, err
	}
	return &constraint, nil
}
