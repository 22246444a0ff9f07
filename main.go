package main

import (
	"log"

	"hub/config"
	"hub/database"
	"hub/middleware"
	v1 "hub/routes/v1"
	"hub/services"
	"hub/storage"

	_ "hub/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Competition Hub API
// @version 1.0
// @description Competition lifecycle engine: tasks, rounds, applications, eliminations, reviews and notifications.
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.Load()
	database.InitDB()
	services.InitCache()

	if err := storage.Init(config.UploadDir); err != nil {
		log.Fatal("failed to initialize file storage: ", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.ClientUrl},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1.Register(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	middleware.UpdateSystemMetrics()

	log.Println("Listening on port " + config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
