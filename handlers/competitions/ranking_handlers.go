package competitions

import (
	"fmt"
	"log"
	"net/http"

	"api/database"
	"api/models"
	"api/services"
	"api/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// buildRanking computes the ordered ranking of a competition under a mode
func buildRanking(competitionID, mode string) ([]utils.RankedDish, error) {
	scores, err := services.AggregateDishScores(competitionID)
	if err != nil {
		return nil, err
	}

	var dishes []models.Dish
	if err := database.DB.Where("competition_id = ?", competitionID).Find(&dishes).Error; err != nil {
		return nil, err
	}

	computed := utils.ComputeRankingScores(scores, mode)

	ranking := make([]utils.RankedDish, 0, len(dishes))
	for _, dish := range dishes {
		entry := utils.RankedDish{DishID: dish.ID, Name: dish.Name}
		if aggregate, ok := scores[dish.ID]; ok {
			entry.Avg = aggregate.Avg
			entry.Count = aggregate.Count
			entry.Score = computed[dish.ID]
		}
		ranking = append(ranking, entry)
	}

	utils.SortRanking(ranking)
	return ranking, nil
}

// GetRanking returns the competition ranking
// @Summary Get competition ranking
// @Description Ranked dishes under the official ranking mode, or a preview mode via the mode query parameter
// @Tags Competitions
// @Produce json
// @Param id path string true "Competition ID"
// @Param mode query string false "Preview mode (simple or bayesian)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /competitions/{id}/ranking [get]
func GetRanking(c *gin.Context) {
	competitionID := c.Param("id")

	var competition models.Competition
	if err := services.GetCompetition(competitionID, &competition); err != nil {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}

	// A preview mode never touches the persisted official mode
	mode := competition.RankingMode
	if override := c.Query("mode"); override != "" {
		if override != models.RankingModeSimple && override != models.RankingModeBayesian {
			respondWithError(c, http.StatusBadRequest, ErrInvalidRankingMode)
			return
		}
		mode = override
	}

	ranking, err := buildRanking(competitionID, mode)
	if err != nil {
		log.Println("Ranking computation error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrRankingFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mode": mode, "ranking": ranking})
}

// ExportRankingExcel exports the final ranking as an Excel sheet
// @Summary Export the ranking as Excel
// @Description Download the competition ranking as an .xlsx file. Admin only.
// @Tags Competitions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Competition ID"
// @Param participant_id query string true "Caller participant ID"
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /competitions/{id}/ranking/export [get]
// @Security Bearer
func ExportRankingExcel(c *gin.Context) {
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

	var competition models.Competition
	if err := services.GetCompetition(competitionID, &competition); err != nil {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}

	ranking, err := buildRanking(competitionID, competition.RankingMode)
	if err != nil {
		log.Println("Ranking computation error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrRankingFailed)
		return
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Classifica"
	file.SetSheetName("Sheet1", sheet)
	headers := []string{"Posizione", "Piatto", "Punteggio", "Media", "Voti"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, header)
	}
	for i, entry := range ranking {
		row := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.Name)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.Score)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.Avg)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.Count)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=classifica-%s.xlsx", competition.Code))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		log.Println("Excel export error: ", err)
	}
}
