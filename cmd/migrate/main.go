package main

import (
	"log"

	"interview-assistant/internal/config"
	"interview-assistant/internal/database"
	"interview-assistant/internal/logger"

	"go.uber.org/zap"
)

// Applies the session database migrations ahead of a deployment. The API
// runs the same migrations at startup when the sqlite backend is selected.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLiteDB(cfg.SQLite.Path)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Session database is up to date", zap.String("path", cfg.SQLite.Path))
}
