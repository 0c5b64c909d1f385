package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Ingredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RoomID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ingredient_room_name,priority:1" json:"room_id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	Name         string    `gorm:"uniqueIndex:idx_ingredient_room_name,priority:2" json:"name"` // lower-cased, trimmed
	Amount       *string   `json:"amount,omitempty"`
	Unit         *string   `json:"unit,omitempty"`
	RawText      string    `gorm:"type:text" json:"raw_text"`
	DetectedFrom string    `gorm:"type:varchar(16)" json:"detected_from"` // text, speech, image
	Confidence   *float64  `json:"confidence,omitempty"`
	AddedAt      time.Time `gorm:"type:timestamp" json:"added_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
