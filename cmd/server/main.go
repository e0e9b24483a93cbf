package main

import (
	"alcyxob/plan-admin/internal/api"
	"alcyxob/plan-admin/internal/config"
	"alcyxob/plan-admin/internal/repository"
	"alcyxob/plan-admin/internal/repository/memory"
	"alcyxob/plan-admin/internal/repository/mongo"
	"alcyxob/plan-admin/internal/service"
	"alcyxob/plan-admin/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

type repositories struct {
	academy  repository.AcademyPlanRepository
	turf     repository.TurfPlanRepository
	bookings repository.BookingRepository
	close    func()
}

// openRepositories connects the configured storage of record.
func openRepositories(cfg config.DatabaseConfig) (*repositories, error) {
	switch cfg.Driver {
	case "memory":
		log.Println("WARN: Using in-memory storage; plans are lost on restart.")
		return &repositories{
			academy:  memory.NewAcademyPlanRepository(),
			turf:     memory.NewTurfPlanRepository(),
			bookings: memory.NewBookingRepository(),
			close:    func() {},
		}, nil
	case "mongo", "":
		dbClient, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
		}
		appDB := dbClient.Database(cfg.Name)
		log.Println("Database connection established.")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
				log.Printf("ERROR: Index creation failed: %v", err)
				return
			}
			log.Println("Index creation process completed.")
		}()

		return &repositories{
			academy:  mongo.NewMongoAcademyPlanRepository(appDB),
			turf:     mongo.NewMongoTurfPlanRepository(appDB),
			bookings: mongo.NewMongoBookingRepository(appDB),
			close: func() {
				log.Println("Disconnecting MongoDB...")
				if err := mongo.DisconnectDB(dbClient); err != nil {
					log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func main() {
	log.Println("Starting plan catalog service...")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: jwt.secret is not set")
	}
	log.Println("Configuration loaded.")

	repos, err := openRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	defer repos.close()

	// Exports are optional; without a bucket the export routes answer 503.
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		log.Println("Initializing file storage service...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: s3.bucket_name is not set; catalog export is disabled.")
	}

	academyService := service.NewAcademyPlanService(repos.academy)
	turfService := service.NewTurfPlanService(repos.turf)
	services := api.Services{
		Academy:  academyService,
		Turf:     turfService,
		Bookings: service.NewBookingService(repos.bookings),
		Export:   service.NewExportService(academyService, turfService, fileStorage),
	}

	router := gin.Default()
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)
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
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting.")
}
