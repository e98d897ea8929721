package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"vrindavan/society-portal/internal/api"
	"vrindavan/society-portal/internal/config"
	"vrindavan/society-portal/internal/domain"
	"vrindavan/society-portal/internal/notify"
	"vrindavan/society-portal/internal/repository/mongo"
	"vrindavan/society-portal/internal/service"
	"vrindavan/society-portal/internal/storage"
)

// @title Society Document Portal API
// @version 1.0
// @description API for share certificate applications, nomination forms and NOC requests of a housing society.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Society Portal Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	// The unique acknowledgement-number index must exist before the first
	// submission, so unlike general startup work this runs synchronously.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		for _, t := range domain.AllSubmissionTypes {
			if err := mongo.EnsureSubmissionIndexes(ctx, appDB.Collection(mongo.CollectionNameFor(t))); err != nil {
				cancel()
				log.Fatalf("FATAL: Could not create indexes for %s: %v", t, err)
			}
		}
		if err := mongo.EnsureAdminIndexes(ctx, appDB.Collection("admins")); err != nil {
			cancel()
			log.Fatalf("FATAL: Could not create admin indexes: %v", err)
		}
		cancel()
		log.Println("Database indexes ensured.")
	}

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Mailer ---
	mailer := notify.NewSMTPMailer(cfg.SMTP, cfg.Server.BaseURL)

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	submissionRepo := mongo.NewMongoSubmissionRepository(appDB)
	adminRepo := mongo.NewMongoAdminRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	submissionService := service.NewSubmissionService(submissionRepo, fileStorage, mailer)
	uploadService := service.NewUploadService(fileStorage, cfg.Upload)
	adminService := service.NewAdminService(adminRepo, submissionRepo, submissionService,
		fileStorage, mailer, cfg.JWT.Secret, cfg.JWT.Expiration)

	// --- Seed Admin Credential ---
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := adminService.Seed(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			cancel()
			log.Fatalf("FATAL: Could not seed admin account: %v", err)
		}
		cancel()
		log.Printf("Admin account '%s' ready.", cfg.Admin.Username)
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, submissionService, uploadService, adminService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  30 * time.Second, // Generous enough for 2MB multipart uploads
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
