package main

import (
	"context"
	"flag"
	"kitchen-copilot/cmd/config"
	migration "kitchen-copilot/cmd/database/migrate"
	"kitchen-copilot/internal/utils"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	utils.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if *migrate || *migrateOnly {
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("Error migrating database: %v", err)
		}
		if *migrateOnly {
			return
		}
	}

	app, err := config.NewApp(ctx, db)
	if err != nil {
		log.Fatalf("Error creating app: %v", err)
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server")
		_ = app.Shutdown()
	}()

	port := utils.GetConfigDefault("APP_PORT", "8080")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
