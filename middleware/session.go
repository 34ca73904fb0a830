package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"api/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a session token stays valid after authentication
const SessionTTL = 2 * time.Hour

// SessionClaims is the client-held session issued on create/join. It is a
// capability cache only: privileged handlers re-derive role, ownership and
// phase from the store on every call.
type SessionClaims struct {
	CompetitionID   string `json:"competition_id"`
	CompetitionCode string `json:"competition_code"`
	ParticipantID   string `json:"participant_id"`
	Nickname        string `json:"nickname"`
	Role            string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a session token for an authenticated participant
func IssueSessionToken(competitionID, competitionCode, participantID, nickname, role string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		CompetitionID:   competitionID,
		CompetitionCode: competitionCode,
		ParticipantID:   participantID,
		Nickname:        nickname,
		Role:            role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// ParseSessionToken validates a session token and returns its claims.
// Expired tokens fail, forcing the client through the re-auth flow.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GetSessionFromRequest extracts and validates the Bearer session token.
// Responds 401 and returns an error when the session is missing or expired.
func GetSessionFromRequest(c *gin.Context) (*SessionClaims, error) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sessione mancante"})
		return nil, fmt.Errorf("no session token provided")
	}

	claims, err := ParseSessionToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sessione scaduta"})
		return nil, err
	}
	return claims, nil
}
