package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/handlers"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Select task persistence
	persister, err := newPersister(cfg)
	if err != nil {
		log.Fatalf("Failed to set up task storage: %v", err)
	}

	// Initialize AI service
	var drafter services.TaskDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	}

	taskService, err := services.NewTaskService(ctx, persister, drafter)
	if err != nil {
		log.Fatalf("Failed to load tasks: %v", err)
	}

	documentService, err := services.NewDocumentService(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare uploads: %v", err)
	}

	reportService := services.NewReportService(taskService)

	scheduler := services.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleOverdueReport(cfg.OverdueReportSchedule, reportService); err != nil {
		log.Fatalf("Failed to schedule overdue report: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Gin router
	r := gin.Default()
	handlers.RegisterRoutes(r, handlers.RouterDeps{
		Tasks:          taskService,
		Documents:      documentService,
		Reports:        reportService,
		MaxUploadBytes: cfg.MaxUploadMB << 20,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Failed to shut down server: %v", err)
		}
	}()

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Println("Server stopped")
}

func newPersister(cfg *config.Config) (repository.TaskPersister, error) {
	if cfg.StoreDriver == constants.StoreDriverFile {
		log.Printf("Storing tasks in %s", cfg.TasksFile)
		return repository.NewFileTaskPersister(cfg.TasksFile), nil
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		return nil, err
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		return nil, err
	}

	return repository.NewGormTaskPersister(database.GetDB()), nil
}
