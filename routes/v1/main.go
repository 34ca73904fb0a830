package v1

import (
	"api/handlers/auth"
	"api/handlers/competitions"
	"api/handlers/dishes"
	"api/handlers/votes"
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(600, 100) // 10 requests per second, 100 burst
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	auth.RegisterRoutes(v1)
	competitions.RegisterRoutes(v1)
	dishes.RegisterRoutes(v1)
	votes.RegisterRoutes(v1)

	// Register metrics and docs endpoints
	RegisterMetricsRoutes(v1)
}
