package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote represents a participant's single current selection or rating in a
// competition. The unique (competition_id, participant_id) index makes the
// cast an upsert: voting again overwrites the previous record.
type Vote struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	CompetitionID string    `gorm:"type:uuid;not null;column:competition_id;uniqueIndex:idx_votes_comp_participant" json:"competition_id"`
	ParticipantID string    `gorm:"type:uuid;not null;column:participant_id;uniqueIndex:idx_votes_comp_participant" json:"participant_id"`
	DishID        string    `gorm:"type:uuid;not null;column:dish_id;index" json:"dish_id"`
	Score         int       `gorm:"not null;default:1" json:"score"`
	CreatedAt     time.Time `json:"created_at"`
	Dish          *Dish     `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"-"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
