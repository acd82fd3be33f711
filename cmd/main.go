package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/S6-InstaClone/AccountService/internal/config"
	"github.com/S6-InstaClone/AccountService/internal/database/minio"
	"github.com/S6-InstaClone/AccountService/internal/database/postgres"
	"github.com/S6-InstaClone/AccountService/internal/event"
	"github.com/S6-InstaClone/AccountService/internal/handlers"
	"github.com/S6-InstaClone/AccountService/internal/identity"
	"github.com/S6-InstaClone/AccountService/internal/repository"
	"github.com/S6-InstaClone/AccountService/internal/services"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/instaclone", "log", "account_service")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}
	defer logFile.Close()

	// Load configuration; missing secrets are fatal before anything starts.
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)

	// db connection
	db, err := postgres.Connect(cfg.PostgresCfg)
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	defer db.Close()

	// picture storage
	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Fatalf("Error connecting to MinIO: %v", err)
	}

	// message bus
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer rabbitConn.Close()
	deletionPublisher := event.NewAccountDeletionPublisher(rabbitConn)

	// identity provider
	keycloakClient := identity.NewKeycloakClient(cfg.KeycloakCfg)

	r := gin.Default()

	// repositories
	profileRepository := repository.NewProfileRepository(db)

	// services
	profileService := services.NewProfileService(profileRepository, minioClient)
	accountDeletionService := services.NewAccountDeletionService(keycloakClient, profileRepository, deletionPublisher, minioClient)

	// handlers
	profileHandler := handlers.NewProfileHandler(profileService)
	accountHandler := handlers.NewAccountHandler(profileService, accountDeletionService)

	// Register routes
	profileHandler.RegisterRoutes(r)
	accountHandler.RegisterRoutes(r)

	log.Printf("Starting account-service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
