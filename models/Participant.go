package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant roles
const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// Participant represents a person enrolled in a competition. Exactly one
// participant per competition has role admin, created with the competition.
type Participant struct {
	ID            string       `gorm:"type:uuid;primary_key" json:"id"`
	CompetitionID string       `gorm:"type:uuid;not null;column:competition_id;uniqueIndex:idx_participants_comp_nick" json:"competition_id"`
	Nickname      string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_participants_comp_nick" json:"nickname"`
	PinHash       string       `gorm:"type:varchar(64);not null;column:pin_hash" json:"-"`
	Role          string       `gorm:"type:varchar(20);not null;default:participant" json:"role"`
	JoinedAt      time.Time    `gorm:"autoCreateTime;column:joined_at" json:"joined_at"`
	Competition   *Competition `gorm:"foreignKey:CompetitionID" json:"-"`
}

// IsAdmin reports whether the participant holds the admin role
func (p *Participant) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
