package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/config"
	"github.com/uniquecreditos/taxsim-service/internal/documents"
	"github.com/uniquecreditos/taxsim-service/internal/handler"
	"github.com/uniquecreditos/taxsim-service/internal/integrations/ai"
	"github.com/uniquecreditos/taxsim-service/internal/letterhead"
	"github.com/uniquecreditos/taxsim-service/internal/report"
	"github.com/uniquecreditos/taxsim-service/internal/repository"
	"github.com/uniquecreditos/taxsim-service/internal/service"
	"github.com/uniquecreditos/taxsim-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Optional .env for local development
	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	letterheadStore := letterhead.NewStore(repo, logger)
	documentStore := documents.NewStore(repo, logger)
	aiConfigStore := ai.NewConfigStore(repo, logger)
	aiClient := ai.NewClient(aiConfigStore, logger)
	renderer := report.NewRenderer(letterheadStore, cfg.HMACSecret, logger)
	mailer := email.NewSender(cfg, logger)

	svc := service.NewService(aiConfigStore, aiClient, renderer, mailer, logger)
	h := handler.NewHandler(svc, letterheadStore, documentStore, aiConfigStore, logger)

	// Setup router
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
