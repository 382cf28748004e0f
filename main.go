package main

import (
	"time"

	"teranga-pro/config"
	"teranga-pro/database"
	billingapi "teranga-pro/internal/api/billing"
	routes "teranga-pro/internal/app/http"
	"teranga-pro/internal/infra/bictorys"
	"teranga-pro/internal/infra/whatsapp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()
	bictorys.LoadConfig()
	whatsapp.LoadConfig()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	billingapi.StartExpiryScheduler()

	r.Run(":" + config.PORT)
}
