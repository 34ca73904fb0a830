package votes

import (
	"log"
	"net/http"

	"api/config"
	"api/database"
	"api/metrics"
	"api/models"
	"api/realtime"
	"api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CastVote records or overwrites the caller's vote for a dish
// @Summary Cast a vote
// @Description Upserts the caller's single vote for a dish; voting again overwrites the previous record
// @Tags Votes
// @Accept json
// @Produce json
// @Param request body CastVoteRequest true "Vote payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /votes [post]
// @Security Bearer
func CastVote(c *gin.Context) {
	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	score := 1
	switch config.VotingMode {
	case config.VotingModeRating:
		if req.Score == nil {
			respondWithError(c, http.StatusBadRequest, ErrInvalidScore)
			return
		}
		score = *req.Score
	case config.VotingModeBinary:
		// There is no score to submit in the binary variant
		if req.Score != nil {
			respondWithError(c, http.StatusBadRequest, ErrInvalidScore)
			return
		}
	}

	var participant models.Participant
	if err := database.DB.First(&participant, "id = ?", req.ParticipantID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrParticipantNotFound)
		return
	}
	if participant.CompetitionID != req.CompetitionID {
		respondWithError(c, http.StatusForbidden, ErrNotAuthorized)
		return
	}

	var competition models.Competition
	if err := services.GetCompetition(req.CompetitionID, &competition); err != nil {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}
	if competition.Phase != models.PhaseVoting {
		respondWithError(c, http.StatusBadRequest, ErrVotingClosed)
		return
	}

	var dish models.Dish
	if err := database.DB.First(&dish, "id = ?", req.DishID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrDishNotFound)
		return
	}
	if dish.CompetitionID != req.CompetitionID {
		respondWithError(c, http.StatusBadRequest, ErrDishWrongComp)
		return
	}
	if dish.ParticipantID != nil && *dish.ParticipantID == req.ParticipantID {
		respondWithError(c, http.StatusBadRequest, ErrSelfVote)
		return
	}

	vote := models.Vote{
		CompetitionID: req.CompetitionID,
		ParticipantID: req.ParticipantID,
		DishID:        req.DishID,
		Score:         score,
	}
	if err := services.UpsertVote(&vote); err != nil {
		log.Println("Vote upsert error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrVoteFailed)
		return
	}

	metrics.VotesCast.Inc()
	realtime.BroadcastUpdate(realtime.CompetitionUpdate{
		CompetitionID: req.CompetitionID,
		UpdateType:    realtime.UpdateVoteCast,
	})

	c.JSON(http.StatusOK, gin.H{"vote": vote})
}

// ReadVoteState returns the caller's vote and the competition aggregates
// @Summary Read vote state
// @Description The caller's current vote, their own dish id, and per-dish aggregates grouped at read time
// @Tags Votes
// @Accept json
// @Produce json
// @Param request body ReadVoteStateRequest true "Caller identity"
// @Success 200 {object} VoteStateResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /votes/read [post]
// @Security Bearer
func ReadVoteState(c *gin.Context) {
	var req ReadVoteStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var participant models.Participant
	if err := database.DB.First(&participant, "id = ?", req.ParticipantID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrParticipantNotFound)
		return
	}
	if participant.CompetitionID != req.CompetitionID {
		respondWithError(c, http.StatusForbidden, ErrNotAuthorized)
		return
	}

	var response VoteStateResponse

	var myVote models.Vote
	err := services.GetParticipantVote(req.CompetitionID, req.ParticipantID, &myVote)
	if err == nil {
		response.MyVotedDishID = &myVote.DishID
		if config.VotingMode == config.VotingModeRating {
			response.MyScore = &myVote.Score
		}
	} else if err != gorm.ErrRecordNotFound {
		log.Println("Vote lookup error: ", err)
	}

	var myDish models.Dish
	err = database.DB.Select("id").
		First(&myDish, "competition_id = ? AND participant_id = ?", req.CompetitionID, req.ParticipantID).Error
	if err == nil {
		response.MyDishID = &myDish.ID
	}

	scores, err := services.AggregateDishScores(req.CompetitionID)
	if err != nil {
		log.Println("Vote aggregation error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrVoteFailed)
		return
	}

	if config.VotingMode == config.VotingModeRating {
		response.DishScores = toScoreEntries(scores)
	} else {
		counts := make([]DishVoteCount, 0, len(scores))
		for dishID, score := range scores {
			counts = append(counts, DishVoteCount{DishID: dishID, Count: score.Count})
		}
		response.VoteCounts = counts
	}

	c.JSON(http.StatusOK, response)
}
