package main

import (
	"context"
	"log"

	"github.com/campuscart/campuscart/internal/catalog/repository"
	"github.com/campuscart/campuscart/internal/catalog/seed"
	"github.com/campuscart/campuscart/internal/config"
	"github.com/campuscart/campuscart/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewSQLiteRepository(conn)
	count, err := seed.Run(context.Background(), repo)
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Printf("Seeded %d products into %s", count, cfg.DBPath)
}
