// Manually trigger the subscription expiry sweep.
//
// The sweep already runs inside the main application as an hourly
// background task. This script is for one-off runs, for example after
// restoring a database backup or importing subscription rows.
//
// Usage: go run scripts/expire_subscriptions.go

package main

import (
	"log"
	"time"

	"faceyoga_backend/internal/config"
	"faceyoga_backend/internal/repository"
	"faceyoga_backend/pkg/database"
	"faceyoga_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repo := repository.NewSubscriptionRepository(db)

	log.Println("running subscription expiry sweep...")
	n, err := repo.ExpireOverdue(time.Now())
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	log.Printf("done, %d subscriptions expired", n)
}
