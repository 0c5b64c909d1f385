package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Vote struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RoomID   uuid.UUID `gorm:"type:uuid;index" json:"room_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;index:idx_vote_recipe;uniqueIndex:idx_vote_user_recipe,priority:2" json:"recipe_id"`
	UserID   string    `gorm:"uniqueIndex:idx_vote_user_recipe,priority:1" json:"user_id"`
	UserName string    `json:"user_name"`
	VotedAt  time.Time `gorm:"type:timestamp" json:"voted_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
