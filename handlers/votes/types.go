package votes

import (
	"api/utils"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrCompetitionNotFound = "Gara non trovata"
	ErrParticipantNotFound = "Partecipante non trovato"
	ErrDishNotFound        = "Piatto non trovato"
	ErrNotAuthorized       = "Non autorizzato"
	ErrVotingClosed        = "Votazione non in corso"
	ErrDishWrongComp       = "Piatto non in questa gara"
	ErrSelfVote            = "Non puoi votare il tuo piatto"
	ErrInvalidScore        = "Punteggio non valido"
	ErrInvalidRequest      = "Invalid request data"
	ErrVoteFailed          = "Errore durante il voto"
)

// CastVoteRequest model for casting a vote. Score is required in the rating
// variant (1-10) and must be absent in the binary variant.
type CastVoteRequest struct {
	CompetitionID string `json:"competitionId" binding:"required,uuid"`
	ParticipantID string `json:"participantId" binding:"required,uuid"`
	DishID        string `json:"dishId" binding:"required,uuid"`
	Score         *int   `json:"score" binding:"omitempty,min=1,max=10"`
}

// ReadVoteStateRequest model for reading the caller's vote state
type ReadVoteStateRequest struct {
	CompetitionID string `json:"competitionId" binding:"required,uuid"`
	ParticipantID string `json:"participantId" binding:"required,uuid"`
}

// DishVoteCount is the binary-variant aggregate for one dish
type DishVoteCount struct {
	DishID string `json:"dish_id"`
	Count  int    `json:"count"`
}

// DishScoreEntry is the rating-variant aggregate for one dish
type DishScoreEntry struct {
	DishID string  `json:"dish_id"`
	Avg    float64 `json:"avg"`
	Count  int     `json:"count"`
}

// VoteStateResponse is the caller's vote plus the competition-wide aggregate.
// VoteCounts is populated in the binary variant, DishScores in the rating one.
type VoteStateResponse struct {
	MyVotedDishID *string          `json:"myVotedDishId"`
	MyScore       *int             `json:"myScore,omitempty"`
	MyDishID      *string          `json:"myDishId"`
	VoteCounts    []DishVoteCount  `json:"voteCounts,omitempty"`
	DishScores    []DishScoreEntry `json:"dishScores,omitempty"`
}

// toScoreEntries flattens an aggregate map into a response slice
func toScoreEntries(scores map[string]utils.DishScore) []DishScoreEntry {
	entries := make([]DishScoreEntry, 0, len(scores))
	for dishID, score := range scores {
		entries = append(entries, DishScoreEntry{DishID: dishID, Avg: score.Avg, Count: score.Count})
	}
	return entries
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
