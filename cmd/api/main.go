package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "ats-pipeline/docs" // Swagger docs
	"ats-pipeline/internal/api"
	"ats-pipeline/internal/board"
	"ats-pipeline/internal/config"
	"ats-pipeline/internal/cv"
	"ats-pipeline/internal/notify"
	"ats-pipeline/internal/stages"
	"ats-pipeline/internal/storage"
)

// @title ATS Pipeline API
// @version 1.0
// @description Hiring pipeline boards: stage moves, filters, analytics and CSV export per job

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("config:", err)
	}

	catalog, err := stages.Load(cfg.StagesFile)
	if err != nil {
		log.Fatal("stages:", err)
	}
	log.Printf("Loaded stage configuration for job types %v", catalog.JobTypes())

	log.Printf("Connecting to %s database...", cfg.StorageDriver)
	db, err := storage.NewDB(cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open:", err)
	}
	defer db.Close()

	log.Println("Database connected successfully!")

	opts := board.Options{QueueSize: cfg.StageQueueSize}
	if cfg.WebhookURL != "" {
		opts.Notifier = notify.NewWebhook(cfg.WebhookURL, 10*time.Second)
		log.Printf("Stage changes will be posted to %s", cfg.WebhookURL)
	}
	b := board.New(db, catalog, opts)

	apiSrv := api.NewAPI(db, b, cv.NewCVParser(cfg.UploadsDir))
	router := api.NewRouter(apiSrv, cfg.SwaggerURL)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second, // resume uploads
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("server shutdown:", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("API server listening on :%s\n", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	<-idleConnsClosed

	// persist queued stage moves before the database closes
	b.Close()
}
