package auth

import (
	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrCompetitionNotFound  = "Gara non trovata"
	ErrCompetitionFull      = "Gara al completo"
	ErrWrongPin             = "PIN errato"
	ErrTooManyAttempts      = "Troppi tentativi. Riprova tra 15 minuti."
	ErrInvalidRequest       = "Invalid request data"
	ErrCodeAllocationFailed = "Failed to generate unique code. Please retry."
	ErrCreateCompetition    = "Failed to create competition"
	ErrCreateParticipant    = "Errore durante la registrazione"
	ErrTokenGenerateFailed  = "Failed to generate session token"
)

// CreateCompetitionRequest model for creating a competition
type CreateCompetitionRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Nickname        string `json:"nickname" binding:"required,max=50"`
	PinHash         string `json:"pinHash" binding:"required"`
	AllowGuests     *bool  `json:"allowGuests"`
	MaxParticipants *int   `json:"maxParticipants" binding:"omitempty,gt=0"`
}

// JoinCompetitionRequest model for joining a competition
type JoinCompetitionRequest struct {
	Code     string `json:"code" binding:"required"`
	Nickname string `json:"nickname" binding:"required,max=50"`
	PinHash  string `json:"pinHash" binding:"required"`
}

// SessionResponse model returned by create, join, and check
type SessionResponse struct {
	CompetitionID   string `json:"competitionId"`
	CompetitionCode string `json:"competitionCode,omitempty"`
	CompetitionName string `json:"competitionName,omitempty"`
	Code            string `json:"code,omitempty"`
	ParticipantID   string `json:"participantId"`
	Nickname        string `json:"nickname"`
	Role            string `json:"role"`
	Token           string `json:"token,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
