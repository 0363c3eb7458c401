package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "marketplace-availability/internal/api/grpc"
	httpapi "marketplace-availability/internal/api/http"
	"marketplace-availability/internal/config"
	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/jobs"
	"marketplace-availability/internal/logger"
	"marketplace-availability/internal/repository"
	"marketplace-availability/internal/repository/memory"
	"marketplace-availability/internal/repository/postgres"
	"marketplace-availability/internal/scheduler"
	"marketplace-availability/internal/security"
	"marketplace-availability/internal/service"
	"marketplace-availability/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	listingsPath := flag.String("listings", "", "JSON file of listings to preload (memory store only)")
	withScheduler := flag.Bool("with-scheduler", false, "Run cron jobs in-process (use with the memory store)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting availability server...", "log_level", cfg.Log.Level, "store", cfg.Store.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	var (
		reservations repository.ReservationRepository
		listings     repository.ListingRepository
		pinger       httpapi.Pinger
	)

	switch cfg.Store.Type {
	case config.StoreTypePostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		store := postgres.NewStore(db)
		if err := store.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Info("Database connection established")

		reservations = store.ReservationRepository
		listings = store.ListingRepository
		pinger = store

	case config.StoreTypeMemory:
		listingStore := memory.NewListingStore()
		if *listingsPath != "" {
			n, err := preloadListings(listingStore, *listingsPath)
			if err != nil {
				log.Fatalf("Failed to preload listings: %v", err)
			}
			logger.Info("Preloaded listings", "count", n, "file", *listingsPath)
		}
		reservations = memory.NewReservationStore()
		listings = listingStore
	}

	if *withScheduler {
		cronScheduler, err := scheduler.NewScheduler(jobs.NewJobRunner(reservations, cfg))
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	bookingSvc := service.NewBookingService(reservations, listings, time.Now, service.WithMaxSpanDays(cfg.Booking.MaxSpanDays))

	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(bookingSvc, tokenManager, pinger, logger.Get()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	if addr := cfg.GetGRPCAddress(); addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			log.Fatalf("Failed to listen: %v", err)
		}
		grpcServer, healthServer := api.NewServer()
		go api.WatchStore(ctx, healthServer, pinger, 15*time.Second)
		go func() {
			logger.Info("gRPC health server listening", "address", addr)
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("gRPC server error", "error", err)
			}
		}()
		defer grpcServer.GracefulStop()
	}

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracing shutdown error", "error", err)
	}
}

func preloadListings(store *memory.ListingStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, l := range listings {
		store.Put(l)
	}
	return len(listings), nil
}
