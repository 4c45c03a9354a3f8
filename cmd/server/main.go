package main

import (
	"log"
	"os"
	"wangwang/internal/db"
	"wangwang/internal/middleware"
	"wangwang/internal/router"
	"wangwang/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// 初始化异步排名服务和定时任务
	services.GetRankingService().StartScheduledScoreUpdate()
	services.StartChampionScheduler()

	// Initialize Gin
	r := gin.Default()

	// Middleware
	r.Use(middleware.LoadViewer())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("WangWang server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
