package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"fairaudit/adapters/api"
	"fairaudit/adapters/postgres"
	"fairaudit/adapters/rng"
	"fairaudit/internal"
	"fairaudit/internal/config"
	"fairaudit/internal/engine"
	"fairaudit/internal/errors"
	"fairaudit/ports"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	// Persistence is optional: without DATABASE_URL the service still
	// computes audits, it just cannot store or re-serve them.
	var reports ports.ReportRepository
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		reports = postgres.NewReportRepository(db)
	} else {
		logger.Warn("[Main] DATABASE_URL not set; report persistence disabled")
	}

	auditor := engine.New(appConfig.Engine, rng.NewDeterministicRNG(time.Now().UnixNano()), logger)

	service := api.NewService(auditor, reports, logger)
	router := service.Router(appConfig.Server.GinMode)

	addr := ":" + appConfig.Server.Port
	logger.Info("[Main] fairness audit API listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.Migrate(ctx, db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}
