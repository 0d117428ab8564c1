package main

import (
	"context"
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

func main() {
	dir := flag.String("dir", database.MigrationsDir, "directory holding migration files")
	down := flag.Bool("down", false, "roll back instead of applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	n, err := database.RunMigrations(db, *dir, direction, logger)
	if err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Migrations finished", zap.Int("count", n), zap.Bool("down", *down))
}
