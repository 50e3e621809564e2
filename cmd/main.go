package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mining-platform/internal/auth"
	"mining-platform/internal/config"
	"mining-platform/internal/database"
	"mining-platform/internal/handlers"
	"mining-platform/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dailyReward, err := decimal.NewFromString(cfg.App.DailyReward)
	if err != nil {
		log.Fatalf("Invalid DAILY_REWARD %q: %v", cfg.App.DailyReward, err)
	}
	referralPercent, err := decimal.NewFromString(cfg.App.ReferralPercent)
	if err != nil {
		log.Fatalf("Invalid REFERRAL_PERCENT %q: %v", cfg.App.ReferralPercent, err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	authService := services.NewAuthService(database.GetDB())
	userService := services.NewUserService(database.GetDB())
	referralService := services.NewReferralService(database.GetDB(), referralPercent)
	miningService := services.NewMiningService(database.GetDB(), dailyReward, referralService)
	taskService := services.NewTaskService(database.GetDB(), referralService)
	leaderboardService := services.NewLeaderboardService(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	miningHandler := handlers.NewMiningHandler(miningService)
	taskHandler := handlers.NewTaskHandler(taskService)
	referralHandler := handlers.NewReferralHandler(referralService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Set up Gin router
	router := gin.Default()
	router.Use(handlers.RequestLogger())

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if cfg.Server.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.Server.FrontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	router.POST("/api/auth/login", authHandler.Login)
	router.POST("/api/referrals/validate", referralHandler.ValidateCode)
	router.GET("/api/leaderboard", leaderboardHandler.GetLeaderboard)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/auth/user", authHandler.GetUser)

		api.GET("/mining/status", miningHandler.GetStatus)
		api.POST("/mining/claim", miningHandler.Claim)

		api.GET("/tasks", taskHandler.GetTasks)
		api.POST("/tasks/:taskId/complete", taskHandler.CompleteTask)

		api.GET("/referrals/stats", referralHandler.GetStats)

		api.GET("/leaderboard/rank", leaderboardHandler.GetRank)

		api.POST("/wallet/connect", userHandler.ConnectWallet)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
