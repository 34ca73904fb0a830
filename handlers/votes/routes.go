package votes

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to voting
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	votes := r.Group("/votes")
	{
		votes.POST("", CastVote)
		votes.POST("/read", ReadVoteState)
	}
}
