package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Room struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name             string     `json:"name"`
	OwnerID          string     `gorm:"index" json:"owner_id"`
	OwnerName        string     `json:"owner_name"`
	Status           string     `gorm:"type:varchar(16);not null" json:"status"` // draft, generating, voting, selected
	SelectedRecipeID *uuid.UUID `gorm:"type:uuid" json:"selected_recipe_id,omitempty"`

	Participants []*Participant  `gorm:"foreignKey:RoomID"`
	Ingredients  []*Ingredient   `gorm:"foreignKey:RoomID"`
	Constraint   *RoomConstraint `gorm:"foreignKey:RoomID"`
	Recipes      []*Recipe       `gorm:"foreignKey:RoomID"`
	Timestamp
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Participant struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RoomID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_participant_room_user,priority:1" json:"room_id"`
	UserID   string    `gorm:"uniqueIndex:idx_participant_room_user,priority:2" json:"user_id"`
	UserName string    `json:"user_name"`
	JoinedAt time.Time `gorm:"type:timestamp" json:"joined_at"`
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
