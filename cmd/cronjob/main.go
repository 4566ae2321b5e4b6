package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/Kavin001K/fabzclean-backend/internal/config"
	"github.com/Kavin001K/fabzclean-backend/internal/jobs"
	"github.com/Kavin001K/fabzclean-backend/internal/logger"
	"github.com/Kavin001K/fabzclean-backend/internal/repository/postgres"
	"github.com/Kavin001K/fabzclean-backend/internal/scheduler"
	"github.com/Kavin001K/fabzclean-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'reconcile-balances', 'send-monthly-statements')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FabZClean Cronjob Runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	emailService := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	jobRunner := jobs.NewJobRunner(db, store, emailService, cfg)

	// Run-once mode for manual invocation and debugging
	if *runOnce != "" {
		switch *runOnce {
		case "reconcile-balances":
			jobRunner.ReconcileBalances()
		case "send-monthly-statements":
			jobRunner.SendMonthlyStatements()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		logger.Info("Run-once job finished", "job", *runOnce)
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	logger.Info("Scheduler running",
		"reconcile_balances", cfg.Scheduler.ReconcileBalances,
		"send_monthly_statements", cfg.Scheduler.SendMonthlyStatements)

	// Block until interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	sched.Stop()
	logger.Info("Cronjob runner stopped")
}
