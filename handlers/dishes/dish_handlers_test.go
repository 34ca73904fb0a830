package dishes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"api/database"
	"api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

func seedCompetition(t *testing.T, phase string) (models.Competition, models.Participant, models.Participant) {
	t.Helper()

	competition := models.Competition{
		Code: "CUCINA", Name: "Gara di cucina", AdminPinHash: "adminpin",
		Phase: phase, AllowGuests: true, RankingMode: models.RankingModeSimple,
	}
	require.NoError(t, database.DB.Create(&competition).Error)

	admin := models.Participant{CompetitionID: competition.ID, Nickname: "anna", PinHash: "adminpin", Role: models.RoleAdmin}
	require.NoError(t, database.DB.Create(&admin).Error)

	member := models.Participant{CompetitionID: competition.ID, Nickname: "bruno", PinHash: "pin", Role: models.RoleParticipant}
	require.NoError(t, database.DB.Create(&member).Error)

	return competition, admin, member
}

func writeRequest(competitionID, participantID, name string) WriteDishRequest {
	return WriteDishRequest{
		CompetitionID: competitionID,
		ParticipantID: participantID,
		Name:          name,
		ChefName:      "Chef " + name,
	}
}

type dishResponse struct {
	Dish   models.Dish    `json:"dish"`
	Photos []models.Photo `json:"photos"`
}

func TestCreateDishInPreparation(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhasePreparation)

	body := writeRequest(competition.ID, member.ID, "Lasagne")
	body.PhotoURLs = []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes", body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var resp dishResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Lasagne", resp.Dish.Name)
	require.NotNil(t, resp.Dish.ParticipantID)
	assert.Equal(t, member.ID, *resp.Dish.ParticipantID)
	require.Len(t, resp.Photos, 2)
	assert.Equal(t, 0, resp.Photos[0].Order)
	assert.Equal(t, 1, resp.Photos[1].Order)
}

func TestCreateDishWithCallerSuppliedID(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhasePreparation)

	dishID := uuid.NewString()
	body := writeRequest(competition.ID, member.ID, "Tiramisù")
	body.DishID = &dishID
	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes", body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var resp dishResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, dishID, resp.Dish.ID)
}

func TestCreateWithSuppliedIDStillGated(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhasePreparation)

	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes",
		writeRequest(competition.ID, member.ID, "Primo"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	// A fresh id does not turn a second create into an edit
	dishID := uuid.NewString()
	body := writeRequest(competition.ID, member.ID, "Secondo")
	body.DishID = &dishID
	recorder = performJSON(router, http.MethodPost, "/api/v1/dishes", body)
	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), ErrAlreadyHasDish)
}

func TestSecondDishRejected(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhasePreparation)

	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes",
		writeRequest(competition.ID, member.ID, "Primo"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performJSON(router, http.MethodPost, "/api/v1/dishes",
		writeRequest(competition.ID, member.ID, "Secondo"))
	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), ErrAlreadyHasDish)
}

func TestCreateDishWrongPhase(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhaseVoting)

	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes",
		writeRequest(competition.ID, member.ID, "Tardivo"))
	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), ErrWrongPhase)
}

func TestAdminBypassesPhaseGate(t *testing.T) {
	router := setupRouter(t)
	competition, admin, _ := seedCompetition(t, models.PhaseVoting)

	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes",
		writeRequest(competition.ID, admin.ID, "Fuori orario"))
	assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
}

func TestEditOtherParticipantsDish(t *testing.T) {
	router := setupRouter(t)
	competition, admin, member := seedCompetition(t, models.PhasePreparation)

	dish := models.Dish{CompetitionID: competition.ID, ParticipantID: &admin.ID, Name: "Risotto", ChefName: "Anna"}
	require.NoError(t, database.DB.Create(&dish).Error)

	body := writeRequest(competition.ID, member.ID, "Rubato")
	body.DishID = &dish.ID
	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes", body)
	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), ErrNotYourDish)
}

func TestEditReplacesPhotoSet(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhasePreparation)

	create := writeRequest(competition.ID, member.ID, "Polenta")
	create.PhotoURLs = []string{"https://cdn.example.com/old1.jpg", "https://cdn.example.com/old2.jpg"}
	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes", create)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created dishResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))

	edit := writeRequest(competition.ID, member.ID, "Polenta concia")
	edit.DishID = &created.Dish.ID
	edit.PhotoURLs = []string{"https://cdn.example.com/new.jpg"}
	recorder = performJSON(router, http.MethodPost, "/api/v1/dishes", edit)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var edited dishResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &edited))
	assert.Equal(t, "Polenta concia", edited.Dish.Name)
	require.Len(t, edited.Photos, 1)
	assert.Equal(t, "https://cdn.example.com/new.jpg", edited.Photos[0].URL)

	var count int64
	database.DB.Model(&models.Photo{}).Where("dish_id = ?", created.Dish.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestExtraPhotosDuringVoting(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhaseVoting)

	dish := models.Dish{CompetitionID: competition.ID, ParticipantID: &member.ID, Name: "Gnocchi", ChefName: "Bruno"}
	require.NoError(t, database.DB.Create(&dish).Error)

	// Owner may append extras mid-voting
	body := writeRequest(competition.ID, member.ID, "Gnocchi")
	body.DishID = &dish.ID
	body.IsExtra = true
	body.PhotoURLs = []string{"https://cdn.example.com/extra.jpg"}
	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes", body)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var resp dishResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Photos, 1)
	assert.True(t, resp.Photos[0].IsExtra)

	// A non-owner cannot, even with the extra flag
	carla := models.Participant{CompetitionID: competition.ID, Nickname: "carla", PinHash: "p", Role: models.RoleParticipant}
	require.NoError(t, database.DB.Create(&carla).Error)
	body.ParticipantID = carla.ID
	recorder = performJSON(router, http.MethodPost, "/api/v1/dishes", body)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestTooManyPhotos(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhasePreparation)

	body := writeRequest(competition.ID, member.ID, "Fotografo")
	for i := 0; i <= maxPhotos; i++ {
		body.PhotoURLs = append(body.PhotoURLs, "https://cdn.example.com/p.jpg")
	}
	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes", body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteDishCascade(t *testing.T) {
	router := setupRouter(t)
	competition, admin, member := seedCompetition(t, models.PhaseVoting)

	dish := models.Dish{CompetitionID: competition.ID, ParticipantID: &member.ID, Name: "Frittata", ChefName: "Bruno"}
	require.NoError(t, database.DB.Create(&dish).Error)
	require.NoError(t, database.DB.Create(&models.Photo{DishID: dish.ID, URL: "https://cdn.example.com/f.jpg"}).Error)
	require.NoError(t, database.DB.Create(&models.Vote{CompetitionID: competition.ID, ParticipantID: admin.ID, DishID: dish.ID, Score: 6}).Error)

	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes/delete",
		DeleteDishRequest{CompetitionID: competition.ID, ParticipantID: admin.ID, DishID: dish.ID})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var dishCount, photoCount, voteCount int64
	database.DB.Model(&models.Dish{}).Where("id = ?", dish.ID).Count(&dishCount)
	database.DB.Model(&models.Photo{}).Where("dish_id = ?", dish.ID).Count(&photoCount)
	database.DB.Model(&models.Vote{}).Where("dish_id = ?", dish.ID).Count(&voteCount)
	assert.Equal(t, int64(0), dishCount)
	assert.Equal(t, int64(0), photoCount)
	assert.Equal(t, int64(0), voteCount)
}

func TestDeleteDishAdminOnly(t *testing.T) {
	router := setupRouter(t)
	competition, _, member := seedCompetition(t, models.PhaseVoting)

	dish := models.Dish{CompetitionID: competition.ID, ParticipantID: &member.ID, Name: "Frittata", ChefName: "Bruno"}
	require.NoError(t, database.DB.Create(&dish).Error)

	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes/delete",
		DeleteDishRequest{CompetitionID: competition.ID, ParticipantID: member.ID, DishID: dish.ID})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestDeleteDishOfOtherCompetition(t *testing.T) {
	router := setupRouter(t)
	competition, admin, _ := seedCompetition(t, models.PhaseVoting)

	other := models.Competition{Code: "ALTRA2", Name: "Altra", AdminPinHash: "x", Phase: models.PhaseVoting}
	require.NoError(t, database.DB.Create(&other).Error)
	foreign := models.Dish{CompetitionID: other.ID, Name: "Estraneo", ChefName: "Zoe"}
	require.NoError(t, database.DB.Create(&foreign).Error)

	recorder := performJSON(router, http.MethodPost, "/api/v1/dishes/delete",
		DeleteDishRequest{CompetitionID: competition.ID, ParticipantID: admin.ID, DishID: foreign.ID})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListDishesRedactsChefUntilFinished(t *testing.T) {
	router := setupRouter(t)
	competition, admin, member := seedCompetition(t, models.PhaseVoting)

	dish := models.Dish{CompetitionID: competition.ID, ParticipantID: &admin.ID, Name: "Arrosto", ChefName: "Anna"}
	require.NoError(t, database.DB.Create(&dish).Error)

	// Anonymous viewer during voting: chef identity hidden
	recorder := performJSON(router, http.MethodGet, "/api/v1/dishes/competition/"+competition.ID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var views []models.DishView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Empty(t, views[0].ChefName)
	assert.Nil(t, views[0].ParticipantID)

	// Owner sees their own dish unredacted
	recorder = performJSON(router, http.MethodGet,
		"/api/v1/dishes/competition/"+competition.ID+"?participant_id="+admin.ID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Anna", views[0].ChefName)

	// Non-owner member still sees it redacted
	recorder = performJSON(router, http.MethodGet,
		"/api/v1/dishes/competition/"+competition.ID+"?participant_id="+member.ID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &views))
	assert.Empty(t, views[0].ChefName)

	// Once finished, everyone sees chef identity
	require.NoError(t, database.DB.Model(&models.Competition{}).
		Where("id = ?", competition.ID).Update("phase", models.PhaseFinished).Error)
	recorder = performJSON(router, http.MethodGet, "/api/v1/dishes/competition/"+competition.ID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &views))
	assert.Equal(t, "Anna", views[0].ChefName)
}
