package room

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"kitchen-copilot/entities"
	"time"
)

type (
	RoomRepository interface {
		// CreateRoom inserts the room, its owner participant and the empty
		// constraint record in one transaction.
		CreateRoom(ctx context.Context, room *entities.Room, owner *entities.Participant, constraint *entities.RoomConstraint) error
		GetRoomByID(ctx context.Context, id uuid.UUID) (*entities.Room, error)
		GetRoomDetail(ctx context.Context, id uuid.UUID) (*entities.Room, error)

		AddParticipant(ctx context.Context, participant *entities.Participant) error
		GetParticipant(ctx context.Context, roomID uuid.UUID, userID string) (*entities.Participant, error)
		GetParticipants(ctx context.Context, roomID uuid.UUID) ([]*entities.Participant, error)

		UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
		// TransitionStatus moves the room to status only if its current status
		// is one of from. It reports whether the row was updated.
		TransitionStatus(ctx context.Context, id uuid.UUID, from []string, status string) (bool, error)
		// SelectRecipe records the chosen recipe and moves the room to status
		// only if its current status is one of from.
		SelectRecipe(ctx context.Context, id uuid.UUID, recipeID uuid.UUID, from []string, status string) (bool, error)
	}

	roomRepository struct {
		db *gorm.DB
	}
)

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) CreateRoom(ctx context.Context, room *entities.Room, owner *entities.Participant, constraint *entities.RoomConstraint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Participants", "Ingredients", "Constraint", "Recipes").Create(room).Error; err != nil {
			return err
		}

		owner.RoomID = room.ID
		if err := tx.Create(owner).Error; err != nil {
			return err
		}

		constraint.RoomID = room.ID
		return tx.Create(constraint).Error
	})
}

func (r *roomRepository) GetRoomByID(ctx context.Context, id uuid.UUID) (*entities.Room, error) {
	var room entities.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) GetRoomDetail(ctx context.Context, id uuid.UUID) (*entities.Room, error) {
	var room entities.Room
	if err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at asc") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("added_at asc") }).
		Preload("Constraint").
		Preload("Recipes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Where("id = ?", id).
		First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) AddParticipant(ctx context.Context, participant *entities.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *roomRepository) GetParticipant(ctx context.Context, roomID uuid.UUID, userID string) (*entities.Participant, error) {
	var participant entities.Participant
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *roomRepository) GetParticipants(ctx context.Context, roomID uuid.UUID) ([]*entities.Participant, error) {
	var participants []*entities.Participant
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("joined_at asc").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&entities.Room{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

func (r *roomRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []string, status string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.Room{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *roomRepository) SelectRecipe(ctx context.Context, id uuid.UUID, recipeID uuid.UUID, from []string, status string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.Room{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":             status,
			"selected_recipe_id": recipeID,
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
