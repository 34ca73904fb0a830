package services

import (
	"fmt"

	"api/database"
	"api/models"
)

// GetCompetitionParticipant fetches the participant and verifies it belongs to
// the given competition. Authorization decisions are always re-derived from
// the store; nothing asserted by the client is trusted.
func GetCompetitionParticipant(participantID, competitionID string, participant *models.Participant) error {
	if err := database.DB.First(participant, "id = ?", participantID).Error; err != nil {
		return err
	}
	if participant.CompetitionID != competitionID {
		return fmt.Errorf("participant does not belong to this competition")
	}
	return nil
}

// GetParticipantByNickname fetches a participant by (competition, nickname)
func GetParticipantByNickname(competitionID, nickname string, participant *models.Participant) error {
	return database.DB.
		First(participant, "competition_id = ? AND nickname = ?", competitionID, nickname).Error
}

// CountParticipants returns the number of participants enrolled in a competition
func CountParticipants(competitionID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Participant{}).
		Where("competition_id = ?", competitionID).Count(&count).Error
	return count, err
}
