package auth

import (
	"log"
	"net/http"
	"strings"

	"api/database"
	"api/metrics"
	"api/middleware"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCompetition creates a competition together with its admin participant
// @Summary Create a new competition
// @Description Allocates a unique join code and creates the competition with its admin participant
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body CreateCompetitionRequest true "Competition details"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/competitions [post]
func CreateCompetition(c *gin.Context) {
	var req CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	code, err := services.GenerateUniqueCode()
	if err != nil {
		log.Println("Code allocation failed: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrCodeAllocationFailed)
		return
	}

	allowGuests := true
	if req.AllowGuests != nil {
		allowGuests = *req.AllowGuests
	}

	competition := models.Competition{
		Code:            code,
		Name:            req.Name,
		AdminPinHash:    req.PinHash,
		Phase:           models.PhasePreparation,
		AllowGuests:     allowGuests,
		MaxParticipants: req.MaxParticipants,
		RankingMode:     models.RankingModeSimple,
	}
	if err := database.DB.Create(&competition).Error; err != nil {
		log.Println("Competition insert error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrCreateCompetition)
		return
	}

	participant := models.Participant{
		CompetitionID: competition.ID,
		Nickname:      req.Nickname,
		PinHash:       req.PinHash,
		Role:          models.RoleAdmin,
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		log.Println("Participant insert error: ", err)
		// Compensating delete so no orphaned competition remains
		database.DB.Delete(&models.Competition{}, "id = ?", competition.ID)
		respondWithError(c, http.StatusInternalServerError, ErrCreateParticipant)
		return
	}

	token, err := middleware.IssueSessionToken(competition.ID, code, participant.ID, participant.Nickname, participant.Role)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{
		CompetitionID: competition.ID,
		Code:          code,
		ParticipantID: participant.ID,
		Nickname:      participant.Nickname,
		Role:          participant.Role,
		Token:         token,
	})
}

// JoinCompetition joins (or re-authenticates into) a competition by code
// @Summary Join a competition
// @Description Joins a competition by code, or re-authenticates an existing nickname
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body JoinCompetitionRequest true "Join details"
// @Success 200 {object} SessionResponse
// @Success 201 {object} SessionResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /auth/join [post]
func JoinCompetition(c *gin.Context) {
	var req JoinCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	code := strings.ToUpper(req.Code)

	var competition models.Competition
	if err := services.GetCompetitionByCode(code, &competition); err != nil {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}

	// Sliding-window rate limit, checked before any participant data is
	// touched. A limited attempt is not appended to the log.
	limited, err := services.JoinRateLimited(code, req.Nickname)
	if err != nil {
		log.Println("Rate limit check error: ", err)
	}
	if limited {
		metrics.JoinRateLimited.Inc()
		respondWithError(c, http.StatusTooManyRequests, ErrTooManyAttempts)
		return
	}
	if err := services.LogJoinAttempt(code, req.Nickname); err != nil {
		log.Println("Login attempt log error: ", err)
	}

	var existing models.Participant
	err = services.GetParticipantByNickname(competition.ID, req.Nickname, &existing)
	if err == nil {
		// Re-auth path: the participant's own PIN or the competition
		// admin PIN both unlock the existing identity
		if existing.PinHash != req.PinHash && competition.AdminPinHash != req.PinHash {
			respondWithError(c, http.StatusUnauthorized, ErrWrongPin)
			return
		}

		token, tokenErr := middleware.IssueSessionToken(competition.ID, code, existing.ID, existing.Nickname, existing.Role)
		if tokenErr != nil {
			respondWithError(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
			return
		}

		metrics.JoinsTotal.WithLabelValues("reauth").Inc()
		c.JSON(http.StatusOK, SessionResponse{
			CompetitionID:   competition.ID,
			CompetitionName: competition.Name,
			CompetitionCode: code,
			ParticipantID:   existing.ID,
			Nickname:        existing.Nickname,
			Role:            existing.Role,
			Token:           token,
		})
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Println("Participant lookup error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrCreateParticipant)
		return
	}

	// New join
	if competition.MaxParticipants != nil {
		count, countErr := services.CountParticipants(competition.ID)
		if countErr != nil {
			log.Println("Participant count error: ", countErr)
			respondWithError(c, http.StatusInternalServerError, ErrCreateParticipant)
			return
		}
		if count >= int64(*competition.MaxParticipants) {
			respondWithError(c, http.StatusForbidden, ErrCompetitionFull)
			return
		}
	}

	participant := models.Participant{
		CompetitionID: competition.ID,
		Nickname:      req.Nickname,
		PinHash:       req.PinHash,
		Role:          models.RoleParticipant,
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		log.Println("Participant insert error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrCreateParticipant)
		return
	}

	token, err := middleware.IssueSessionToken(competition.ID, code, participant.ID, participant.Nickname, participant.Role)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}

	metrics.JoinsTotal.WithLabelValues("new").Inc()
	c.JSON(http.StatusCreated, SessionResponse{
		CompetitionID:   competition.ID,
		CompetitionName: competition.Name,
		CompetitionCode: code,
		ParticipantID:   participant.ID,
		Nickname:        participant.Nickname,
		Role:            participant.Role,
		Token:           token,
	})
}

// CheckSession validates the caller's session token
// @Summary Check session validity
// @Description Validates the Bearer session token and confirms the participant still exists
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckSession(c *gin.Context) {
	session, err := middleware.GetSessionFromRequest(c)
	if err != nil {
		return
	}

	// The token is a cache; confirm the identity against the store
	var participant models.Participant
	if err := services.GetCompetitionParticipant(session.ParticipantID, session.CompetitionID, &participant); err != nil {
		respondWithError(c, http.StatusUnauthorized, ErrWrongPin)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		CompetitionID:   session.CompetitionID,
		CompetitionCode: session.CompetitionCode,
		ParticipantID:   participant.ID,
		Nickname:        participant.Nickname,
		Role:            participant.Role,
	})
}
