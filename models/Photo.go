package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo represents an already-hosted image of a dish. Order is the display
// position; IsExtra marks photos appended during the voting phase.
type Photo struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	DishID    string    `gorm:"type:uuid;not null;column:dish_id;index" json:"dish_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	Order     int       `gorm:"not null;column:display_order" json:"order"`
	IsExtra   bool      `gorm:"not null;default:false;column:is_extra" json:"is_extra"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
