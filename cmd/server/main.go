package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AnneAnotherThing/hivenow-app/internal/billing"
	"github.com/AnneAnotherThing/hivenow-app/internal/config"
	"github.com/AnneAnotherThing/hivenow-app/internal/constants"
	"github.com/AnneAnotherThing/hivenow-app/internal/database"
	"github.com/AnneAnotherThing/hivenow-app/internal/handlers"
	"github.com/AnneAnotherThing/hivenow-app/internal/middleware"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/realtime"
	"github.com/AnneAnotherThing/hivenow-app/internal/repository"
	"github.com/AnneAnotherThing/hivenow-app/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.GinMode != "release" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to add indexes")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Redis store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Realtime relay
	hub := realtime.NewHub(logger.With().Str("component", "realtime").Logger())

	// Payment processor client
	processor := billing.NewClient(cfg.BillingAPIURL, cfg.BillingAPIKey)
	prices := map[models.SubscriptionTier]string{
		models.TierBasic:      cfg.PriceIDBasic,
		models.TierPro:        cfg.PriceIDPro,
		models.TierEnterprise: cfg.PriceIDEnterprise,
	}

	// Services
	authService := services.NewAuthService(userRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, processor, prices)
	projectService := services.NewProjectService(projectRepo, subscriptionRepo)
	messageService := services.NewMessageService(messageRepo, projectRepo, hub)
	reviewService := services.NewReviewService(reviewRepo, projectRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	projectHandler := handlers.NewProjectHandler(projectService, authService)
	messageHandler := handlers.NewMessageHandler(messageService)
	reviewHandler := handlers.NewReviewHandler(reviewService, authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "HiveNow API is running",
		})
	})

	// Websocket relay for in-project messaging
	r.GET("/ws", func(c *gin.Context) {
		hub.HandleConnection(c.Writer, c.Request)
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User routes
		users := api.Group("/users")
		{
			users.PATCH("/settings", middleware.RequireAuth(), authHandler.UpdateSettings)
			users.GET("/:id/reviews", middleware.OptionalAuth(), reviewHandler.ListUserReviews)
		}

		// Subscription routes (protected)
		subs := api.Group("/subscriptions")
		subs.Use(middleware.RequireAuth())
		{
			subs.GET("", subscriptionHandler.GetCurrentSubscription)
			subs.POST("", subscriptionHandler.CreateSubscription)
			subs.POST("/cancel", subscriptionHandler.CancelSubscription)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PATCH("/:id", middleware.RequireProjectAccess(), projectHandler.UpdateProject)
			projects.POST("/:id/assign", middleware.RequireProvider(), projectHandler.AssignProject)
			projects.GET("/:id/messages", middleware.RequireProjectAccess(), messageHandler.ListMessages)
			projects.POST("/:id/messages", middleware.RequireProjectAccess(), messageHandler.SendMessage)
			projects.POST("/:id/reviews", reviewHandler.SubmitReview)
		}

		// Project reviews are publicly listable; hidden ones only show up for
		// their receiver
		api.GET("/projects/:id/reviews", middleware.OptionalAuth(), reviewHandler.ListProjectReviews)

		// Review routes (protected)
		reviews := api.Group("/reviews")
		reviews.Use(middleware.RequireAuth())
		{
			reviews.PATCH("/:id/visibility", reviewHandler.ToggleReviewVisibility)
		}
	}

	// Start server
	logger.Info().Str("addr", cfg.ServerAddr).Msg("Server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
