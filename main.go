package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mvini0721/Ridetrack/api"
	"github.com/Mvini0721/Ridetrack/datastore"
	"github.com/Mvini0721/Ridetrack/extraction"
	rh "github.com/Mvini0721/Ridetrack/route-handlers"
	"github.com/Mvini0721/Ridetrack/webhooks"
	"github.com/caarlos0/env/v10"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

const (
	dbPingTimeout     = 5 * time.Second
	shutdownTimeout   = 15 * time.Second
	dbMaxOpenConns    = 25
	dbMaxIdleConns    = 25
	dbConnMaxLifetime = 5 * time.Minute
)

type config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DatabaseURL  string `env:"DB_CONNECTION_STRING" envDefault:"user=postgres password=password dbname=ridetrack host=localhost port=5432 sslmode=disable"`
	IngestDomain string `env:"INBOUND_EMAIL_DOMAIN" envDefault:"rides.ridetrack.dev"`
}

func main() {
	cfg := loadConfig()

	db, err := setupDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	defer db.Close()

	userRepo := datastore.NewUserRepository(db)
	rideRepo := datastore.NewRideRepository(db)

	pipeline := extraction.NewPipeline(extraction.DefaultRegistry(), userRepo)

	userHandler := rh.NewUserHandler(userRepo, cfg.IngestDomain)
	rideHandler := rh.NewRideHandler(rideRepo)
	statsHandler := rh.NewStatsHandler(rideRepo)

	inboundEmailHandler := webhooks.NewInboundEmailHandler(pipeline, rideRepo)

	apiRouter := api.SetupRoutes(userHandler, rideHandler, statsHandler)

	mainRouter := chi.NewRouter()
	mainRouter.Mount("/", apiRouter)
	mainRouter.Post("/webhooks/inbound-email", inboundEmailHandler.HandleInbound)

	startServer(cfg.Port, mainRouter)
}

func loadConfig() config {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment config: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		log.Warn("DB_CONNECTION_STRING not set, using default local connection string")
	}
	return cfg
}

func setupDatabase(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close() // Close unusable connection pool
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection successful")
	return db, nil
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal // Block until signal received
	log.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}

	log.Info("Server gracefully stopped")
}
