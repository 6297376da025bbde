// main.go
package main

import (
	"log"

	"onnrides/cmd"
	"onnrides/internal/data/repository"
	"onnrides/internal/wire"
	"onnrides/pkg/cache"
	"onnrides/pkg/database"
	"onnrides/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to redis when enabled; a nil cache degrades to
	// database-only reads.
	var c *cache.Cache
	if config.Redis.Enabled {
		c, err = cache.New(config.Redis.Addr, config.Redis.Password, config.Redis.DB, logger)
		if err != nil {
			logger.Warn("Failed to connect to redis, continuing without cache", zap.Error(err))
		} else {
			defer c.Close()
			logger.Info("Redis connected successfully")
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, db, c, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
