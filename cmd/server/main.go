package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"hangar-service/internal/domain/repository"
	"hangar-service/internal/infrastructure/config"
	"hangar-service/internal/infrastructure/persistence"
	"hangar-service/internal/interface/aeroapi"
	"hangar-service/internal/interface/api"
	"hangar-service/internal/interface/imagesearch"
	repo "hangar-service/internal/interface/repository"
	"hangar-service/internal/usecase"
	"hangar-service/pkg/cache"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
	"hangar-service/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Hangar Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(cfg.MetricsNamespace, registry)

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	airlineRepository := repo.NewMongoAirlineRepository(db)
	airportRepository := repo.NewMongoAirportRepository(db)
	aircraftRepository := repo.NewMongoAircraftRepository(db)
	flightRepository := repo.NewMongoFlightRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"airlines": airlineRepository.EnsureIndexes,
		"airports": airportRepository.EnsureIndexes,
		"aircraft": aircraftRepository.EnsureIndexes,
		"flights":  flightRepository.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal("Failed to create indexes", "collection", name, "error", err)
		}
	}

	// External providers
	aeroClient := aeroapi.NewClient(cfg.AeroAPIBaseURL, cfg.AeroAPIKey, cfg.ExternalTimeout, m, log)

	// Reference tables are optional; without them airports come from AeroAPI only
	// and unknown airline codes get placeholder names.
	var (
		gormDB           *gorm.DB
		airlineDirectory repository.AirlineDirectory
		airportProviders []repository.AirportInfoProvider
	)
	if cfg.PostgresDSN != "" {
		log.Info("Connecting to PostgreSQL")
		gormDB, err = persistence.NewPostgresDB(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineDirectory = repo.NewGormAirlineDirectory(gormDB)
		airportProviders = append(airportProviders, repo.NewGormAirportDirectory(gormDB))
	}
	airportProviders = append(airportProviders, aeroClient)
	airportInfo := repo.NewAirportInfoChain(log, airportProviders...)

	// Photo enrichment
	var enricher *usecase.PhotoEnricher
	var badgerCache *cache.BadgerCache
	if cfg.PhotoSearchEnabled() {
		searcher, err := imagesearch.NewGoogleSearcher(ctx, cfg.GoogleAPIKey, cfg.GoogleSearchEngineID, cfg.ExternalTimeout, m, log)
		if err != nil {
			log.Fatal("Failed to create image searcher", "error", err)
		}

		var photoCache cache.Cache
		switch cfg.CacheBackend {
		case config.CacheBackendBadger:
			badgerCache, err = cache.OpenBadgerCache(cfg.BadgerDir)
			if err != nil {
				log.Fatal("Failed to open badger cache", "dir", cfg.BadgerDir, "error", err)
			}
			photoCache = badgerCache
		default:
			photoCache = cache.NewMemoryCache(utils.RealClock{})
		}

		enricher = usecase.NewPhotoEnricher(aircraftRepository, searcher, photoCache, utils.RealClock{}, usecase.PhotoEnricherConfig{
			Timeout:         cfg.ExternalTimeout,
			CacheTTL:        cfg.PhotoCacheTTL,
			RefreshInterval: cfg.PhotoRefreshInterval,
			RetryInterval:   cfg.PhotoRetryInterval,
		}, m, log.With("component", "photo_enricher"))
	} else {
		log.Warn("Google search credentials missing, aircraft photos disabled")
	}

	// Resolvers and service
	clock := utils.RealClock{}
	airlineResolver := usecase.NewAirlineResolver(airlineRepository, airlineDirectory, clock, m, log.With("component", "airline_resolver"))
	airportResolver := usecase.NewAirportResolver(airportRepository, airportInfo, clock, m, log.With("component", "airport_resolver"))
	aircraftResolver := usecase.NewAircraftResolver(aircraftRepository, enricher, clock, m, log.With("component", "aircraft_resolver"))

	hangarService := usecase.NewHangarService(
		flightRepository,
		airlineRepository,
		airportRepository,
		aircraftRepository,
		aeroClient,
		airlineResolver,
		airportResolver,
		aircraftResolver,
		enricher,
		clock,
		m,
		log.With("component", "hangar_service"),
	)

	// Set up HTTP server
	handler := api.NewHandler(hangarService, log.With("component", "api"))
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(handler, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	if enricher != nil {
		if err := enricher.Wait(shutdownCtx); err != nil {
			log.Warn("Photo enrichment still running at shutdown", "error", err)
		}
	}

	cancel() // Cancel the context to stop all goroutines

	if badgerCache != nil {
		if err := badgerCache.Close(); err != nil {
			log.Error("Badger cache close error", "error", err)
		}
	}

	if gormDB != nil {
		if err := persistence.ClosePostgresDB(gormDB); err != nil {
			log.Error("PostgreSQL close error", "error", err)
		}
	}

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Hangar Service stopped")
}
