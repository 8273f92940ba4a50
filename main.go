package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"sheetdesk/adapters/excel"
	"sheetdesk/adapters/postgres"
	"sheetdesk/app"
	"sheetdesk/domain/reconcile"
	"sheetdesk/internal/config"
	"sheetdesk/ui"
)

func main() {
	// Load .env if present; environment variables win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	policy, err := reconcile.ParsePolicy(cfg.Import.IdentityPolicy)
	if err != nil {
		log.Fatalf("Invalid identity policy: %v", err)
	}
	log.Printf("[Main] Reconciliation identity policy: %s", policy)

	store := postgres.NewDatasetStore(db)
	decoder := excel.NewDataDecoder()

	imports := app.NewImportService(decoder, store, policy)
	views := app.NewViewService(store)
	sessions := app.NewSessionManager(cfg.View.FilterDebounce, cfg.View.FrameInterval)

	server := ui.NewServer(imports, views, sessions, cfg.Import.MaxUploadBytes)
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
