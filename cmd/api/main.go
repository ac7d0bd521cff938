package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/fractionalquest/repo-agent/internal/config"
	"github.com/fractionalquest/repo-agent/internal/database"
	"github.com/fractionalquest/repo-agent/internal/handlers"
	"github.com/fractionalquest/repo-agent/internal/services"
)

func main() {
	// .env is optional in deployed environments.
	if err := godotenv.Load(); err != nil {
		log.Println("[api] No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	ctx := context.Background()

	llmService, err := services.NewLLMService(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create LLM client: ", err)
	}
	log.Printf("[api] LLM provider: %s", llmService.Provider)

	// Conversation context store is optional - without Redis the extractor
	// relies on request-supplied context only.
	var contextService *services.ContextService
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		contextService = services.NewContextService(rdb)
		log.Println("[api] Conversation context store enabled")
	}

	extractionService := services.NewExtractionService(llmService, contextService)
	repoService := services.NewRepoService(db)
	repoHandler := handlers.NewRepoHandler(extractionService, repoService)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/repo/extract", repoHandler.Extract)
		api.POST("/repo/extract-stream", repoHandler.ExtractStream)
		api.POST("/repo/validate", repoHandler.Validate)
		api.GET("/repo/:user_id", repoHandler.GetRepo)
	}

	log.Printf("[api] Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
