package competitions

import (
	"net/http"

	"api/database"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
)

// GetCompetition returns the public state of a competition
// @Summary Get competition state
// @Description Get the phase, name and settings of a competition. Polled by clients for phase changes.
// @Tags Competitions
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} CompetitionStateResponse
// @Failure 404 {object} map[string]string
// @Router /competitions/{id} [get]
func GetCompetition(c *gin.Context) {
	competitionID := c.Param("id")

	var competition models.Competition
	if err := services.GetCompetition(competitionID, &competition); err != nil {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}

	c.JSON(http.StatusOK, CompetitionStateResponse{
		ID:              competition.ID,
		Code:            competition.Code,
		Name:            competition.Name,
		Phase:           competition.Phase,
		RankingMode:     competition.RankingMode,
		AllowGuests:     competition.AllowGuests,
		MaxParticipants: competition.MaxParticipants,
	})
}

// GetCompetitionParticipants returns the competition roster
// @Summary Get competition participants
// @Description List all participants of a competition. Admin only.
// @Tags Competitions
// @Produce json
// @Param id path string true "Competition ID"
// @Param participant_id query string true "Caller participant ID"
// @Success 200 {array} models.Participant
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /competitions/{id}/participants [get]
// @Security Bearer
func GetCompetitionParticipants(c *gin.Context) {
	competitionID := c.Param("id")
	callerID := c.Query("participant_id")

	var caller models.Participant
	if err := services.GetCompetitionParticipant(callerID, competitionID, &caller); err != nil {
		respondWithError(c, http.StatusNotFound, ErrParticipantNotFound)
		return
	}
	if !caller.IsAdmin() {
		respondWithError(c, http.StatusForbidden, ErrNotAdmin)
		return
	}

	var participants []models.Participant
	if err := database.DB.Where("competition_id = ?", competitionID).
		Order("joined_at").Find(&participants).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, "Failed to fetch participants")
		return
	}

	c.JSON(http.StatusOK, participants)
}
