package competitions

import (
	"github.com/gin-gonic/gin"
)

// Settings actions
const (
	ActionAdvancePhase   = "advance_phase"
	ActionResetVotes     = "reset_votes"
	ActionSetRankingMode = "set_ranking_mode"
)

// Constants for error messages
const (
	ErrCompetitionNotFound = "Gara non trovata"
	ErrParticipantNotFound = "Partecipante non trovato"
	ErrNotAdmin            = "Accesso negato: solo l'admin puo eseguire questa azione"
	ErrAlreadyFinished     = "Gara gia conclusa"
	ErrInvalidPhase        = "Fase non valida"
	ErrInvalidRankingMode  = "Modalita di classifica non valida"
	ErrInvalidRequest      = "Invalid request data"
	ErrUnsupportedAction   = "Azione non supportata"
	ErrPhaseUpdateFailed   = "Errore durante l'aggiornamento della fase"
	ErrResetVotesFailed    = "Errore durante il reset dei voti"
	ErrRankingFailed       = "Errore durante il calcolo della classifica"
)

// SettingsRequest model for admin settings actions
type SettingsRequest struct {
	Action        string `json:"action" binding:"required,oneof=advance_phase reset_votes set_ranking_mode"`
	CompetitionID string `json:"competitionId" binding:"required,uuid"`
	ParticipantID string `json:"participantId" binding:"required,uuid"`
	RankingMode   string `json:"rankingMode" binding:"omitempty,oneof=simple bayesian"`
}

// CompetitionStateResponse is the public state any client may poll
type CompetitionStateResponse struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	Phase           string `json:"phase"`
	RankingMode     string `json:"ranking_mode"`
	AllowGuests     bool   `json:"allow_guests"`
	MaxParticipants *int   `json:"max_participants"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
