package dishes

import (
	"context"
	"log"
	"net/http"

	"api/database"
	"api/models"
	"api/realtime"
	"api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WriteDish creates or edits a dish with its ordered photo set
// @Summary Create or edit a dish
// @Description Creates a dish (no dishId) or edits one (dishId present), enforcing phase and ownership gates
// @Tags Dishes
// @Accept json
// @Produce json
// @Param request body WriteDishRequest true "Dish payload"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /dishes [post]
// @Security Bearer
func WriteDish(c *gin.Context) {
	var req WriteDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}
	if len(req.PhotoURLs) > maxPhotos {
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

	isAdmin := participant.IsAdmin()

	// A supplied dish id only means edit when the row already exists:
	// clients generate the id up front so photo storage paths can
	// reference it before the dish is created
	isEditing := false
	if req.DishID != nil {
		var existing int64
		database.DB.Model(&models.Dish{}).Where("id = ?", *req.DishID).Count(&existing)
		isEditing = existing > 0
	}

	// Admins bypass phase and ownership gating entirely
	if !isAdmin {
		var competition models.Competition
		if err := services.GetCompetition(req.CompetitionID, &competition); err != nil {
			respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
			return
		}

		if req.IsExtra && competition.Phase == models.PhaseVoting && isEditing {
			// Owner appending extra photos mid-voting
			if !ownsDish(*req.DishID, req.ParticipantID) {
				respondWithError(c, http.StatusForbidden, ErrNotYourDish)
				return
			}
		} else {
			if competition.Phase != models.PhasePreparation {
				respondWithError(c, http.StatusForbidden, ErrWrongPhase)
				return
			}

			if !isEditing {
				// One dish per participant per competition
				var count int64
				database.DB.Model(&models.Dish{}).
					Where("competition_id = ? AND participant_id = ?", req.CompetitionID, req.ParticipantID).
					Count(&count)
				if count > 0 {
					respondWithError(c, http.StatusForbidden, ErrAlreadyHasDish)
					return
				}
			} else if !ownsDish(*req.DishID, req.ParticipantID) {
				respondWithError(c, http.StatusForbidden, ErrNotYourDish)
				return
			}
		}
	}

	var dish models.Dish
	status := http.StatusOK

	if !isEditing {
		dish = models.Dish{
			CompetitionID: req.CompetitionID,
			ParticipantID: &req.ParticipantID,
			Name:          req.Name,
			ChefName:      req.ChefName,
			Ingredients:   req.Ingredients,
			Recipe:        req.Recipe,
			Story:         req.Story,
		}
		if req.DishID != nil {
			dish.ID = *req.DishID
		}
		if err := database.DB.Create(&dish).Error; err != nil {
			log.Println("Dish insert error: ", err)
			respondWithError(c, http.StatusInternalServerError, ErrCreateDishFailed)
			return
		}
		status = http.StatusCreated

		// The dish row is durable; a failed photo insert is logged only
		insertPhotos(dish.ID, req.PhotoURLs, req.IsExtra)
	} else {
		result := database.DB.Model(&models.Dish{}).
			Where("id = ? AND competition_id = ?", *req.DishID, req.CompetitionID).
			Updates(map[string]interface{}{
				"name":        req.Name,
				"chef_name":   req.ChefName,
				"ingredients": req.Ingredients,
				"recipe":      req.Recipe,
				"story":       req.Story,
			})
		if result.Error != nil || result.RowsAffected == 0 {
			respondWithError(c, http.StatusNotFound, ErrDishNotFound)
			return
		}

		// Full photo replace: the submitted list is the new truth, the
		// isExtra carve-out submits existing + new combined
		if err := database.DB.Where("dish_id = ?", *req.DishID).Delete(&models.Photo{}).Error; err != nil {
			log.Println("Photo delete error: ", err)
		}
		insertPhotos(*req.DishID, req.PhotoURLs, req.IsExtra)

		if err := database.DB.First(&dish, "id = ?", *req.DishID).Error; err != nil {
			respondWithError(c, http.StatusNotFound, ErrDishNotFound)
			return
		}
	}

	var photos []models.Photo
	database.DB.Where("dish_id = ?", dish.ID).Order("display_order").Find(&photos)

	realtime.BroadcastUpdate(realtime.CompetitionUpdate{
		CompetitionID: req.CompetitionID,
		UpdateType:    realtime.UpdateDishChanged,
		Payload:       gin.H{"dish_id": dish.ID},
	})

	c.JSON(status, gin.H{"dish": dish, "photos": photos})
}

// ownsDish reports whether the dish exists and belongs to the participant
func ownsDish(dishID, participantID string) bool {
	var dish models.Dish
	if err := database.DB.Select("participant_id").First(&dish, "id = ?", dishID).Error; err != nil {
		return false
	}
	return dish.ParticipantID != nil && *dish.ParticipantID == participantID
}

// insertPhotos stores the URL list as ordered photo rows. Failures are
// non-fatal: the dish row is already persisted and the user can retry.
func insertPhotos(dishID string, urls []string, isExtra bool) {
	for i, url := range urls {
		photo := models.Photo{
			DishID:  dishID,
			URL:     url,
			Order:   i,
			IsExtra: isExtra,
		}
		if err := database.DB.Create(&photo).Error; err != nil {
			log.Println("Photo insert error: ", err)
		}
	}
}

// DeleteDish removes a dish with its photos and votes
// @Summary Delete a dish
// @Description Deletes a dish, its photos (rows and storage blobs) and any votes referencing it. Admin only.
// @Tags Dishes
// @Accept json
// @Produce json
// @Param request body DeleteDishRequest true "Dish reference"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /dishes/delete [post]
// @Security Bearer
func DeleteDish(c *gin.Context) {
	var req DeleteDishRequest
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
	if !participant.IsAdmin() {
		respondWithError(c, http.StatusForbidden, ErrNotAdmin)
		return
	}

	var dish models.Dish
	if err := database.DB.First(&dish, "id = ?", req.DishID).Error; err != nil || dish.CompetitionID != req.CompetitionID {
		respondWithError(c, http.StatusNotFound, ErrDishNotFound)
		return
	}

	// Blob cleanup before the row delete; storage failures never block it
	var photos []models.Photo
	database.DB.Where("dish_id = ?", req.DishID).Find(&photos)
	if services.Storage != nil && len(photos) > 0 {
		urls := make([]string, len(photos))
		for i, photo := range photos {
			urls[i] = photo.URL
		}
		if err := services.Storage.RemovePhotos(context.Background(), urls); err != nil {
			log.Println("Storage delete error (non-fatal): ", err)
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", req.DishID).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("dish_id = ?", req.DishID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Dish{}, "id = ?", req.DishID).Error
	})
	if err != nil {
		log.Println("Dish delete error: ", err)
		respondWithError(c, http.StatusInternalServerError, ErrDeleteDishFailed)
		return
	}

	realtime.BroadcastUpdate(realtime.CompetitionUpdate{
		CompetitionID: req.CompetitionID,
		UpdateType:    realtime.UpdateDishChanged,
		Payload:       gin.H{"dish_id": req.DishID, "deleted": true},
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListDishes returns the dishes of a competition as projections
// @Summary List competition dishes
// @Description Lists dishes with photos. Chef identity is redacted for non-admin, non-owner viewers until the competition is finished.
// @Tags Dishes
// @Produce json
// @Param id path string true "Competition ID"
// @Param participant_id query string false "Caller participant ID"
// @Success 200 {array} models.DishView
// @Failure 404 {object} map[string]string
// @Router /dishes/competition/{id} [get]
func ListDishes(c *gin.Context) {
	competitionID := c.Param("id")
	callerID := c.Query("participant_id")

	var competition models.Competition
	if err := services.GetCompetition(competitionID, &competition); err != nil {
		respondWithError(c, http.StatusNotFound, ErrCompetitionNotFound)
		return
	}

	callerIsAdmin := false
	if callerID != "" {
		var caller models.Participant
		if err := services.GetCompetitionParticipant(callerID, competitionID, &caller); err == nil {
			callerIsAdmin = caller.IsAdmin()
		}
	}

	var dishes []models.Dish
	if err := database.DB.Where("competition_id = ?", competitionID).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order")
		}).
		Order("created_at").Find(&dishes).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, "Failed to fetch dishes")
		return
	}

	views := make([]models.DishView, 0, len(dishes))
	for i := range dishes {
		dish := &dishes[i]
		owner := dish.ParticipantID != nil && callerID != "" && *dish.ParticipantID == callerID
		if callerIsAdmin || owner {
			views = append(views, dish.AdminView())
		} else {
			views = append(views, dish.PublicView(competition.Phase))
		}
	}

	c.JSON(http.StatusOK, views)
}
