package competitions

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to competitions
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	competitions := r.Group("/competitions")
	{
		competitions.GET("/:id", GetCompetition)
		competitions.GET("/:id/ranking", GetRanking)
		competitions.GET("/:id/ranking/export", ExportRankingExcel)
		competitions.GET("/:id/participants", GetCompetitionParticipants)
		competitions.GET("/:id/ws", CompetitionWebSocket)
		competitions.POST("/settings", CompetitionSettings)
	}
}
