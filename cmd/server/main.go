package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tripweave/tripweave/internal/api"
	"github.com/tripweave/tripweave/internal/auth"
	"github.com/tripweave/tripweave/internal/config"
	"github.com/tripweave/tripweave/internal/consolidate"
	"github.com/tripweave/tripweave/internal/database"
	"github.com/tripweave/tripweave/internal/extraction"
	"github.com/tripweave/tripweave/internal/logging"
	"github.com/tripweave/tripweave/internal/metrics"
	"github.com/tripweave/tripweave/internal/server"
	"log/slog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting tripweave")

	ctx := context.Background()

	// Optional persistence. Without DATABASE_URL the service runs stateless.
	var store api.ItineraryStore
	if cfg.Database.URL != "" {
		dbCfg := database.DefaultConfig()
		dbCfg.URL = cfg.Database.URL

		logger.Info("connecting to database")
		db, err := database.Connect(ctx, dbCfg)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := database.NewPostgresItineraryRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}

		store = repo
		logger.Info("database connected")
	} else {
		logger.Warn("DATABASE_URL not set, itinerary persistence disabled")
	}

	// Extraction backend. Falls back to the rule-based extractor when the
	// OpenAI client cannot be constructed.
	var extractor extraction.Extractor
	if cfg.Extractor.Mode == "openai" {
		extractorCfg := extraction.DefaultConfig()
		extractorCfg.APIKey = cfg.Extractor.OpenAIAPIKey
		if cfg.Extractor.OpenAIModel != "" {
			extractorCfg.Model = cfg.Extractor.OpenAIModel
		}

		openaiExtractor, err := extraction.NewOpenAIExtractor(extractorCfg, logger)
		if err != nil {
			logger.Warn("failed to initialize OpenAI extractor, using mock extractor", "error", err)
			extractor = extraction.NewMockExtractor()
		} else {
			logger.Info("using OpenAI extractor", "model", extractorCfg.Model)
			extractor = openaiExtractor
		}
	} else {
		logger.Info("using mock extractor")
		extractor = extraction.NewMockExtractor()
	}

	consolidator := consolidate.New(logger, nil)

	mux := http.NewServeMux()

	collector, err := metrics.NewHTTPCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}
	mux.Handle("/metrics", collector.Handler())

	authConfig := auth.LoadConfigFromEnv()
	logger.Info("auth configured", "jwt_secret_set", authConfig.JWTSecret != "change-this-secret")

	api.SetupRoutes(mux, consolidator, extractor, store, collector, authConfig, logger)

	srv := server.New(cfg.Server, logger, collector.InstrumentHandler(mux))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
