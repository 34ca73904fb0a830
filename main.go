package main

import (
	"log"

	"api/config"
	"api/database"
	v1 "api/routes/v1"
	"api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           Cook-off Voting API
// @version         1.0
// @description     API for real-time cooking competition voting
// @BasePath        /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Session token issued on create or join

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	gin.SetMode(config.GinMode)

	database.InitDB()
	services.InitPhotoStorage()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	v1.Register(r)

	log.Println("Listening on port ", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
