package main

import (
	"context"
	"net/http"
	"os"

	"github.com/djwooster/agora-leaderboard/internal/api"
	"github.com/djwooster/agora-leaderboard/internal/config"
	"github.com/djwooster/agora-leaderboard/internal/database"
	"github.com/djwooster/agora-leaderboard/internal/logger"
	"github.com/djwooster/agora-leaderboard/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Apply schema
	if err := database.Migrate(context.Background()); err != nil {
		logger.Error("Migration failed: %v", err)
		os.Exit(1)
	}

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	handler := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
