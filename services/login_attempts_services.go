package services

import (
	"time"

	"api/config"
	"api/database"
	"api/models"
)

// JoinRateLimited reports whether the (code, nickname) pair has exhausted its
// join attempts within the sliding window. Checked before any participant
// lookup or mutation; a limited attempt is not logged.
func JoinRateLimited(code, nickname string) (bool, error) {
	cfg := config.DefaultJoinRateLimitConfig
	windowStart := time.Now().Add(-cfg.Window)

	var count int64
	err := database.DB.Model(&models.LoginAttempt{}).
		Where("competition_code = ? AND nickname = ? AND attempted_at >= ?", code, nickname, windowStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count >= int64(cfg.MaxAttempts), nil
}

// LogJoinAttempt appends the attempt to the login_attempts log
func LogJoinAttempt(code, nickname string) error {
	return database.DB.Create(&models.LoginAttempt{
		CompetitionCode: code,
		Nickname:        nickname,
	}).Error
}
