package main

import (
	"context"
	"log"
	"os"

	"campusfix/cache"
	"campusfix/controllers"
	"campusfix/database"
	"campusfix/gcs"
	"campusfix/realtime"
	"campusfix/routes"
	"campusfix/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning Error loading .env file:", err)
	}

	gcs.InitGCS()
	defer gcs.Close()

	db.InitDB()
	defer db.DisconnectDB()

	cache.InitCache()
	defer cache.Close()

	controllers.InitMongo(db.Client)

	// live activity: change feed + websocket hub
	hub := realtime.NewHub()
	controllers.InitHub(hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go services.WatchReports(ctx, hub.Notify)

	// fixed polling interval backs up the push path
	scheduler := cron.New()
	pollSpec := os.Getenv("ACTIVITY_POLL_SPEC")
	if pollSpec == "" {
		pollSpec = "@every 30s"
	}
	if _, err := scheduler.AddFunc(pollSpec, hub.Broadcast); err != nil {
		log.Fatal("Failed to schedule activity poll:", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Starting server on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
