package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	api "artevents-backend/internal/api/http"
	"artevents-backend/internal/config"
	"artevents-backend/internal/logger"
	"artevents-backend/internal/notify"
	"artevents-backend/internal/repository/postgres"
	"artevents-backend/internal/security"
	"artevents-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting event access server", "address", cfg.GetServerAddress())

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
	logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret)

	var notifier notify.Notifier = notify.NewLogNotifier()
	if cfg.Notify.SendGridAPIKey != "" && cfg.Notify.DirectoryBaseURL != "" {
		logger.Info("Using SendGrid notifier", "from", cfg.Notify.FromEmail)
		notifier = notify.NewEmailNotifier(
			cfg.Notify.SendGridAPIKey,
			cfg.Notify.FromEmail,
			cfg.Notify.FromName,
			notify.NewHTTPDirectory(cfg.Notify.DirectoryBaseURL),
		)
	}

	eventSvc := service.NewEventService(store, notifier)
	accessSvc := service.NewAccessService(store, notifier)

	router := api.NewRouter(eventSvc, accessSvc, tokenManager, cfg.Server.AllowedOrigins)

	logger.Info("Listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
