package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/onestep-api/internal/config"
	"github.com/yukikurage/onestep-api/internal/constants"
	"github.com/yukikurage/onestep-api/internal/database"
	"github.com/yukikurage/onestep-api/internal/handlers"
	"github.com/yukikurage/onestep-api/internal/logger"
	"github.com/yukikurage/onestep-api/internal/middleware"
	"github.com/yukikurage/onestep-api/internal/repository"
	"github.com/yukikurage/onestep-api/internal/services"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Logger = logger.New().WithLevel(cfg.LogLevel).WithFormat(cfg.LogFormat).Make()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log.Logger))
	r.Use(middleware.RecoveryWithLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,                // Redis pool size
		"tcp",             // network type
		cfg.RedisAddr(),   // Redis address from config
		"",                // username (empty for default user)
		cfg.RedisPassword, // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Redis store")
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Recommendation cooldown lives in redis; a single process can do without it.
	var cooldown services.Cooldown
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr(), Password: cfg.RedisPassword})
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process recommendation cooldown")
		cooldown = services.NewMemoryCooldown(cfg.RecommendCooldown)
	} else {
		cooldown = services.NewRedisCooldown(client, cfg.RecommendCooldown)
	}
	cancel()

	// Initialize AI service
	var recommender services.Recommender
	if cfg.OpenAIAPIKey != "" {
		recommender = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Warn().Msg("OPENAI_API_KEY is not set, recommendations are disabled")
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "OneStep API is running",
		})
	})

	handlers.NewHandlers(repository.New(database.GetDB()), recommender, cooldown).Register(r.Group("/api"))

	// Start server
	log.Info().Str("port", cfg.ServerPort).Msg("Server starting")
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
