package competitions

import (
	"log"
	"net/http"

	"api/database"
	"api/metrics"
	"api/models"
	"api/realtime"
	"api/services"

	"github.com/gin-gonic/gin"
)

// CompetitionSettings executes an admin settings action
// @Summary Execute an admin settings action
// @Description Advances the phase, resets votes, or sets the official ranking mode. Admin only.
// @Tags Competitions
// @Accept json
// @Produce json
// @Param request body SettingsRequest true "Settings action"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /competitions/settings [post]
// @Security Bearer
func CompetitionSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	// Admin authorization is re-derived from the store on every call
	var participant models.Participant
	if err := services.GetCompetitionParticipant(req.ParticipantID, req.CompetitionID, &participant); err != nil {
		respondWithError(c, http.StatusNotFound, ErrParticipantNotFound)
		return
	}
	if !participant.IsAdmin() {
		respondWithError(c, http.StatusForbidden, ErrNotAdmin)
		return
	}

	switch req.Action {
	case ActionAdvancePhase:
		advancePhase(c, req.CompetitionID)
	case ActionResetVotes:
		resetVotes(c, req.CompetitionID)
	case ActionSetRankingMode:
		setRankingMode(c, req.CompetitionID, req.RankingMode)
	default:
		respondWithError(c, http.StatusBadRequest, ErrUnsupportedAction)
	}
}

// advancePhase moves the competition to the next phase of the forward map
func advancePhase(c *gin.Context, competitionID string) {
	var competition models.Competition
	if err := services.GetCompetition(competitionID, &competition); err != nil {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}

	if competition.Phase == models.PhaseFinished {
		respondWithError(c, http.StatusBadRequest, ErrAlreadyFinished)
		return
	}

	nextPhase, err := services.NextPhase(competition.Phase)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidPhase)
		return
	}

	if err := database.DB.Model(&models.Competition{}).
		Where("id = ?", competitionID).
		Update("phase", nextPhase).Error; err != nil {
		log.Println("Phase update error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrPhaseUpdateFailed)
		return
	}

	metrics.PhaseAdvances.WithLabelValues(nextPhase).Inc()
	realtime.BroadcastUpdate(realtime.CompetitionUpdate{
		CompetitionID: competitionID,
		UpdateType:    realtime.UpdatePhaseChanged,
		Payload:       gin.H{"phase": nextPhase},
	})

	c.JSON(http.StatusOK, gin.H{"phase": nextPhase})
}

// resetVotes bulk-deletes every vote of the competition
func resetVotes(c *gin.Context, competitionID string) {
	deleted, err := services.DeleteCompetitionVotes(competitionID)
	if err != nil {
		log.Println("Reset votes error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrResetVotesFailed)
		return
	}

	realtime.BroadcastUpdate(realtime.CompetitionUpdate{
		CompetitionID: competitionID,
		UpdateType:    realtime.UpdateVotesReset,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": deleted})
}

// setRankingMode persists the official ranking mode for all viewers
func setRankingMode(c *gin.Context, competitionID, mode string) {
	if mode != models.RankingModeSimple && mode != models.RankingModeBayesian {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRankingMode)
		return
	}

	if err := database.DB.Model(&models.Competition{}).
		Where("id = ?", competitionID).
		Update("ranking_mode", mode).Error; err != nil {
		log.Println("Ranking mode update error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrRankingFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ranking_mode": mode})
}
