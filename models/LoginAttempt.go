package models

import "time"

// LoginAttempt is an append-only log row recording a join attempt. Its only
// reader is the sliding-window rate limit counter on competition joins.
type LoginAttempt struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CompetitionCode string    `gorm:"type:varchar(6);not null;column:competition_code;index:idx_login_attempts_code_nick" json:"competition_code"`
	Nickname        string    `gorm:"type:varchar(50);not null;index:idx_login_attempts_code_nick" json:"nickname"`
	AttemptedAt     time.Time `gorm:"autoCreateTime;column:attempted_at" json:"attempted_at"`
}
