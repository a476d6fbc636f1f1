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

	"github.com/atoolsera/agency-backend/config"
	"github.com/atoolsera/agency-backend/internal/auth"
	"github.com/atoolsera/agency-backend/internal/bootstrap"
	"github.com/atoolsera/agency-backend/internal/careers"
	devrepo "github.com/atoolsera/agency-backend/internal/developers/repository"
	intakerepo "github.com/atoolsera/agency-backend/internal/intake/repository"
	"github.com/atoolsera/agency-backend/internal/jobs"
	"github.com/atoolsera/agency-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	log.Printf("Starting %s version %s (%s)", bootstrap.ServiceName, cfg.App.Version, cfg.App.Environment)

	ctx := context.Background()

	dbs, err := bootstrap.OpenDatabases(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbs.Close()

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, dbs.SQL, postgres.Migrations)
		if err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Printf("Applied %d migration(s)", len(applied))
	}

	deps := bootstrap.RouterDeps{Config: cfg, DB: dbs}

	switch cfg.Auth.Provider {
	case config.AuthProviderFirebase:
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		deps.Firebase = client
		log.Println("Authenticating with Firebase ID tokens")
	default:
		rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		deps.Redis = rdb
	}

	if deps.Blobs, err = bootstrap.OpenBlobStores(ctx, &cfg.Storage); err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}
	if deps.Catalog, err = careers.Default(); err != nil {
		log.Fatalf("Failed to load careers catalog: %v", err)
	}

	scheduler := jobs.NewScheduler(devrepo.NewRepo(dbs.Pool), intakerepo.NewRepo(dbs.Pool))
	if err := scheduler.Start(cfg.Jobs.ReconcileSpec); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	scheduler.Stop(shutdownCtx)

	log.Println("Server exited")
}
