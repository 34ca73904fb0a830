package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"api/database"
	"api/middleware"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	database.InitTestDB(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"))
	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeSession(t *testing.T, recorder *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestCreateCompetition(t *testing.T) {
	router := setupRouter(t)

	recorder := performJSON(router, http.MethodPost, "/api/v1/auth/competitions", CreateCompetitionRequest{
		Name: "Sagra del risotto", Nickname: "anna", PinHash: "abcd1234",
	})

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	resp := decodeSession(t, recorder)

	assert.Len(t, resp.Code, services.CodeLength)
	for _, char := range resp.Code {
		assert.True(t, strings.ContainsRune(services.CodeAlphabet, char))
	}
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.NotEmpty(t, resp.Token)

	// The admin participant was created atomically with the competition
	var participant models.Participant
	require.NoError(t, database.DB.First(&participant, "id = ?", resp.ParticipantID).Error)
	assert.Equal(t, resp.CompetitionID, participant.CompetitionID)
	assert.Equal(t, models.RoleAdmin, participant.Role)

	var competition models.Competition
	require.NoError(t, database.DB.First(&competition, "id = ?", resp.CompetitionID).Error)
	assert.Equal(t, models.PhasePreparation, competition.Phase)
}

func TestCreateCompetitionInvalidInput(t *testing.T) {
	router := setupRouter(t)

	recorder := performJSON(router, http.MethodPost, "/api/v1/auth/competitions", gin.H{"name": "No pin"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestJoinCompetitionNewParticipant(t *testing.T) {
	router := setupRouter(t)
	created := decodeSession(t, performJSON(router, http.MethodPost, "/api/v1/auth/competitions", CreateCompetitionRequest{
		Name: "Sagra", Nickname: "anna", PinHash: "adminpin",
	}))

	// Codes are matched case-insensitively
	recorder := performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: strings.ToLower(created.Code), Nickname: "bruno", PinHash: "pin-b",
	})

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	resp := decodeSession(t, recorder)
	assert.Equal(t, models.RoleParticipant, resp.Role)
	assert.Equal(t, "Sagra", resp.CompetitionName)
	assert.NotEmpty(t, resp.Token)
}

func TestJoinCompetitionNotFound(t *testing.T) {
	router := setupRouter(t)

	recorder := performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: "ZZZZZZ", Nickname: "bruno", PinHash: "pin",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestJoinCompetitionReAuth(t *testing.T) {
	router := setupRouter(t)
	created := decodeSession(t, performJSON(router, http.MethodPost, "/api/v1/auth/competitions", CreateCompetitionRequest{
		Name: "Sagra", Nickname: "anna", PinHash: "adminpin",
	}))
	performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: created.Code, Nickname: "bruno", PinHash: "pin-b",
	})

	// Same nickname, own PIN: re-auth succeeds with 200
	recorder := performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: created.Code, Nickname: "bruno", PinHash: "pin-b",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Admin PIN unlocks any existing nickname
	recorder = performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: created.Code, Nickname: "bruno", PinHash: "adminpin",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Wrong PIN is rejected
	recorder = performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: created.Code, Nickname: "bruno", PinHash: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), ErrWrongPin)

	// No duplicate participant rows were created along the way
	var count int64
	database.DB.Model(&models.Participant{}).
		Where("competition_id = ? AND nickname = ?", created.CompetitionID, "bruno").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestJoinCompetitionFull(t *testing.T) {
	router := setupRouter(t)
	limit := 2
	created := decodeSession(t, performJSON(router, http.MethodPost, "/api/v1/auth/competitions", CreateCompetitionRequest{
		Name: "Sagra", Nickname: "anna", PinHash: "adminpin", MaxParticipants: &limit,
	}))

	recorder := performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: created.Code, Nickname: "bruno", PinHash: "pin-b",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	// The admin already counts toward the limit, so the third person bounces
	recorder = performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: created.Code, Nickname: "carla", PinHash: "pin-c",
	})
	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), ErrCompetitionFull)
}

func TestJoinCompetitionRateLimited(t *testing.T) {
	router := setupRouter(t)
	created := decodeSession(t, performJSON(router, http.MethodPost, "/api/v1/auth/competitions", CreateCompetitionRequest{
		Name: "Sagra", Nickname: "anna", PinHash: "adminpin",
	}))
	performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: created.Code, Nickname: "bruno", PinHash: "pin-b",
	})

	// Burn through the window with wrong PINs; the first join above already
	// logged one attempt
	for i := 0; i < 4; i++ {
		recorder := performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
			Code: created.Code, Nickname: "bruno", PinHash: fmt.Sprintf("wrong-%d", i),
		})
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	}

	// The sixth attempt in the window is rejected even with the right PIN
	recorder := performJSON(router, http.MethodPost, "/api/v1/auth/join", JoinCompetitionRequest{
		Code: created.Code, Nickname: "bruno", PinHash: "pin-b",
	})
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Troppi tentativi")

	// Rejected attempts are not appended to the log
	var logged int64
	database.DB.Model(&models.LoginAttempt{}).
		Where("competition_code = ? AND nickname = ?", created.Code, "bruno").Count(&logged)
	assert.Equal(t, int64(5), logged)
}

func TestCheckSession(t *testing.T) {
	router := setupRouter(t)
	created := decodeSession(t, performJSON(router, http.MethodPost, "/api/v1/auth/competitions", CreateCompetitionRequest{
		Name: "Sagra", Nickname: "anna", PinHash: "adminpin",
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/check", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeSession(t, recorder)
	assert.Equal(t, created.ParticipantID, resp.ParticipantID)
	assert.Equal(t, models.RoleAdmin, resp.Role)
}

func TestCheckSessionMissingToken(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/check", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCheckSessionStaleParticipant(t *testing.T) {
	router := setupRouter(t)

	// A valid token for an identity that no longer exists in the store
	token, err := middleware.IssueSessionToken("comp-x", "ABC123", "part-x", "ghost", "participant")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/check", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
