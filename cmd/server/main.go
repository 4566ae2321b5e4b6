package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	api "github.com/Kavin001K/fabzclean-backend/internal/api/http"
	"github.com/Kavin001K/fabzclean-backend/internal/config"
	"github.com/Kavin001K/fabzclean-backend/internal/logger"
	"github.com/Kavin001K/fabzclean-backend/internal/repository/postgres"
	"github.com/Kavin001K/fabzclean-backend/internal/security"
	"github.com/Kavin001K/fabzclean-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FabZClean backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	authSvc := service.NewAuthService(store.StaffRepository, tokenManager)
	creditSvc := service.NewCreditService(
		store.CreditRepository,
		store.CustomerRepository,
		cfg.Ledger.MaxWriteAttempts,
		time.Duration(cfg.Ledger.RetryBackoffMs)*time.Millisecond,
	)
	reportSvc := service.NewReportService(store.CreditRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository)

	router := api.NewRouter(tokenManager, store.IdempotencyRepository, authSvc, creditSvc, reportSvc, customerSvc)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
