package dishes

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to dishes
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	dishes := r.Group("/dishes")
	{
		dishes.POST("", WriteDish)
		dishes.POST("/delete", DeleteDish)
		dishes.GET("/competition/:id", ListDishes)
	}
}
