package dishes

import (
	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrCompetitionNotFound = "Gara non trovata"
	ErrParticipantNotFound = "Partecipante non trovato"
	ErrDishNotFound        = "Piatto non trovato"
	ErrNotAuthorized       = "Non autorizzato"
	ErrNotAdmin            = "Solo l'admin può eliminare i piatti"
	ErrWrongPhase          = "Piatti modificabili solo in fase preparazione"
	ErrAlreadyHasDish      = "Hai già aggiunto un piatto per questa gara"
	ErrNotYourDish         = "Non puoi modificare il piatto di un altro partecipante"
	ErrInvalidRequest      = "Invalid request data"
	ErrCreateDishFailed    = "Errore durante la creazione del piatto"
	ErrDeleteDishFailed    = "Errore durante l'eliminazione del piatto"
)

// maxPhotos caps how many photo URLs a single dish carries
const maxPhotos = 10

// WriteDishRequest model for creating or editing a dish.
// A present DishID means edit, absent means create.
type WriteDishRequest struct {
	CompetitionID string   `json:"competitionId" binding:"required,uuid"`
	ParticipantID string   `json:"participantId" binding:"required,uuid"`
	DishID        *string  `json:"dishId" binding:"omitempty,uuid"`
	Name          string   `json:"name" binding:"required,max=100"`
	ChefName      string   `json:"chefName" binding:"required,max=50"`
	Ingredients   string   `json:"ingredients" binding:"max=2000"`
	Recipe        string   `json:"recipe" binding:"max=5000"`
	Story         string   `json:"story" binding:"max=2000"`
	PhotoURLs     []string `json:"photoUrls" binding:"omitempty,dive,url"`
	IsExtra       bool     `json:"isExtra"`
}

// DeleteDishRequest model for deleting a dish
type DeleteDishRequest struct {
	CompetitionID string `json:"competitionId" binding:"required,uuid"`
	ParticipantID string `json:"participantId" binding:"required,uuid"`
	DishID        string `json:"dishId" binding:"required,uuid"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
