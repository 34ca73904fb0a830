package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dish represents a competition entry submitted by a participant.
// ParticipantID is nullable: a dish can outlive its owner (redacted entries).
// At most one dish per (competition, participant) when the owner is known.
type Dish struct {
	ID            string       `gorm:"type:uuid;primary_key" json:"id"`
	CompetitionID string       `gorm:"type:uuid;not null;column:competition_id;uniqueIndex:idx_dishes_comp_participant" json:"competition_id"`
	ParticipantID *string      `gorm:"type:uuid;column:participant_id;uniqueIndex:idx_dishes_comp_participant" json:"participant_id"`
	Name          string       `gorm:"type:varchar(100);not null" json:"name"`
	ChefName      string       `gorm:"type:varchar(50);not null;column:chef_name" json:"chef_name"`
	Ingredients   string       `gorm:"type:text" json:"ingredients"`
	Recipe        string       `gorm:"type:text" json:"recipe"`
	Story         string       `gorm:"type:text" json:"story"`
	CreatedAt     time.Time    `json:"created_at"`
	Photos        []*Photo     `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	Competition   *Competition `gorm:"foreignKey:CompetitionID" json:"-"`
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DishView is a projection of a Dish sent to clients. The public view hides
// chef identity until the competition is finished; the admin/owner view never
// does. Both are derived from the same stored entity so they cannot diverge.
type DishView struct {
	ID            string   `json:"id"`
	CompetitionID string   `json:"competition_id"`
	ParticipantID *string  `json:"participant_id"`
	Name          string   `json:"name"`
	ChefName      string   `json:"chef_name"`
	Ingredients   string   `json:"ingredients"`
	Recipe        string   `json:"recipe"`
	Story         string   `json:"story"`
	Photos        []*Photo `json:"photos"`
}

// AdminView exposes the dish unredacted
func (d *Dish) AdminView() DishView {
	return DishView{
		ID:            d.ID,
		CompetitionID: d.CompetitionID,
		ParticipantID: d.ParticipantID,
		Name:          d.Name,
		ChefName:      d.ChefName,
		Ingredients:   d.Ingredients,
		Recipe:        d.Recipe,
		Story:         d.Story,
		Photos:        d.Photos,
	}
}

// PublicView redacts chef identity fields while the competition has not
// reached the finished phase
func (d *Dish) PublicView(phase string) DishView {
	view := d.AdminView()
	if phase != PhaseFinished {
		view.ChefName = ""
		view.ParticipantID = nil
	}
	return view
}
