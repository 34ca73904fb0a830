package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"api/database"
	"api/models"

	"gorm.io/gorm"
)

// CodeAlphabet is the fixed 36-symbol alphabet competition codes are drawn from
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the fixed length of a competition code
const CodeLength = 6

// codeAllocationAttempts bounds the random draws before giving up
const codeAllocationAttempts = 5

// randomCode draws a candidate competition code
func randomCode() (string, error) {
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(CodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = CodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// GenerateUniqueCode allocates a competition code that no existing competition
// uses, retrying up to 5 random draws before failing
func GenerateUniqueCode() (string, error) {
	for attempt := 0; attempt < codeAllocationAttempts; attempt++ {
		candidate, err := randomCode()
		if err != nil {
			return "", err
		}

		var count int64
		if err := database.DB.Model(&models.Competition{}).
			Where("code = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique competition code")
}

// GetCompetition fetches a competition by id
func GetCompetition(competitionID string, competition *models.Competition) error {
	return database.DB.First(competition, "id = ?", competitionID).Error
}

// GetCompetitionByCode fetches a competition by its join code.
// The lookup is case-insensitive: codes are stored uppercased.
func GetCompetitionByCode(code string, competition *models.Competition) error {
	return database.DB.First(competition, "code = ?", code).Error
}

// NextPhase returns the successor of the given phase, or an error when the
// phase has no successor (finished, or an unknown value)
func NextPhase(phase string) (string, error) {
	next, ok := models.PhaseOrder[phase]
	if !ok {
		return "", fmt.Errorf("phase %q has no successor", phase)
	}
	return next, nil
}

// CompetitionExists reports whether a competition with the given id exists
func CompetitionExists(competitionID string) bool {
	var competition models.Competition
	err := database.DB.Select("id").First(&competition, "id = ?", competitionID).Error
	return err != gorm.ErrRecordNotFound && competition.ID != ""
}
