// @title Face Yoga Platform API
// @version 1.0
// @description Backend for the face yoga app: exercise catalog, course purchases, access control and goal progress.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"faceyoga_backend/internal/app"
	"faceyoga_backend/internal/config"
	"faceyoga_backend/pkg/configwatcher"
	"faceyoga_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force migrations on startup even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Migrations complete, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(next *config.Config) {
		application.ApplyConfig(next)
	})

	application.Run()
}
