package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/config"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/handler"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/ingest"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/middleware"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/repository/postgres"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/service/analysis"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/service/docsystem"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"llm_provider", cfg.LLMProvider,
		"llm_model", cfg.LLMModel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("database connected")

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	playbookRepo := postgres.NewPlaybookRepository(repoConfig)
	reviewRepo := postgres.NewReviewRepository(repoConfig)
	txManager := postgres.NewTransactionManager(repoConfig)

	provider, err := analysis.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to setup LLM provider: %v", err)
	}
	completer := analysis.NewProviderCompleter(provider, cfg.LLMModel)
	engine := analysis.NewEngine(completer, logger)
	logger.Info("llm provider ready", "provider", completer.Name())

	extractors := ingest.NewRegistry(logger)

	docService := docsystem.NewDocumentService(docRepo, playbookRepo, extractors, logger)
	playbookService := docsystem.NewPlaybookService(playbookRepo, extractors, logger)
	reviewService := docsystem.NewReviewService(reviewRepo, docRepo, logger)
	analysisService := docsystem.NewAnalysisService(docRepo, playbookRepo, reviewRepo, txManager, engine, logger)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Handlers{
		Documents: handler.NewDocumentHandler(docService, logger),
		Playbooks: handler.NewPlaybookHandler(playbookService, logger),
		Reviews:   handler.NewReviewHandler(reviewService, analysisService, logger),
	})

	// Order: CORS → RequestLogger → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h,
		ReadTimeout: 30 * time.Second,
		// Analysis waits on the LLM
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
