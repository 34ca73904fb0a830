package services

import (
	"api/database"
	"api/models"
	"api/utils"

	"gorm.io/gorm/clause"
)

// UpsertVote records the participant's current vote, overwriting any previous
// record for the same (competition, participant). The conflict clause rides on
// the unique index, so two near-simultaneous casts by the same participant can
// never produce two rows.
func UpsertVote(vote *models.Vote) error {
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}, {Name: "participant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"dish_id", "score", "created_at"}),
	}).Create(vote).Error
}

// GetParticipantVote fetches the caller's current vote, if any
func GetParticipantVote(competitionID, participantID string, vote *models.Vote) error {
	return database.DB.
		First(vote, "competition_id = ? AND participant_id = ?", competitionID, participantID).Error
}

// AggregateDishScores groups all vote rows of a competition by dish at read
// time. No materialized counts are persisted anywhere.
func AggregateDishScores(competitionID string) (map[string]utils.DishScore, error) {
	var rows []struct {
		DishID string
		Avg    float64
		Count  int
	}
	err := database.DB.Model(&models.Vote{}).
		Select("dish_id, AVG(score) AS avg, COUNT(*) AS count").
		Where("competition_id = ?", competitionID).
		Group("dish_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scores := make(map[string]utils.DishScore, len(rows))
	for _, row := range rows {
		scores[row.DishID] = utils.DishScore{Avg: row.Avg, Count: row.Count}
	}
	return scores, nil
}

// DeleteCompetitionVotes bulk-deletes every vote of a competition and returns
// the number of rows removed (the admin "reset votes" action)
func DeleteCompetitionVotes(competitionID string) (int64, error) {
	result := database.DB.Where("competition_id = ?", competitionID).Delete(&models.Vote{})
	return result.RowsAffected, result.Error
}
