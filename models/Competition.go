package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Competition phases. Phases only ever advance forward:
// preparation -> voting -> finished.
const (
	PhasePreparation = "preparation"
	PhaseVoting      = "voting"
	PhaseFinished    = "finished"
)

// PhaseOrder maps each phase to its successor. Finished has none.
var PhaseOrder = map[string]string{
	PhasePreparation: PhaseVoting,
	PhaseVoting:      PhaseFinished,
}

// Ranking modes selectable by the admin as the official view
const (
	RankingModeSimple   = "simple"
	RankingModeBayesian = "bayesian"
)

// Competition represents a cooking competition that participants join with a code
type Competition struct {
	ID              string         `gorm:"type:uuid;primary_key" json:"id"`
	Code            string         `gorm:"type:varchar(6);unique;not null" json:"code"`
	Name            string         `gorm:"type:varchar(100);not null" json:"name"`
	AdminPinHash    string         `gorm:"type:varchar(64);not null;column:admin_pin_hash" json:"-"`
	Phase           string         `gorm:"type:varchar(20);not null;default:preparation" json:"phase"`
	AllowGuests     bool           `gorm:"not null;default:true;column:allow_guests" json:"allow_guests"`
	MaxParticipants *int           `gorm:"column:max_participants" json:"max_participants"`
	RankingMode     string         `gorm:"type:varchar(20);not null;default:simple;column:ranking_mode" json:"ranking_mode"`
	CreatedAt       time.Time      `json:"created_at"`
	Participants    []*Participant `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Dishes          []*Dish        `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"dishes,omitempty"`
	Votes           []*Vote        `gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE" json:"votes,omitempty"`
}

func (c *Competition) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
