package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/reglens-inc/reglens-engine/pkg/catalog"
	"github.com/reglens-inc/reglens-engine/pkg/citations"
	"github.com/reglens-inc/reglens-engine/pkg/config"
	"github.com/reglens-inc/reglens-engine/pkg/database"
	"github.com/reglens-inc/reglens-engine/pkg/handlers"
	"github.com/reglens-inc/reglens-engine/pkg/llm"
	"github.com/reglens-inc/reglens-engine/pkg/middleware"
	"github.com/reglens-inc/reglens-engine/pkg/services"
	"github.com/reglens-inc/reglens-engine/pkg/store"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // flush on exit is best-effort

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
	)

	kv, cleanup, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer cleanup()

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatal("Failed to load standards catalog", zap.Error(err))
	}
	logger.Info("Standards catalog loaded", zap.Int("standards", len(cat.Standards())))

	client, err := llm.NewClient(&llm.Config{
		Provider:    cfg.LLM.Provider,
		Endpoint:    cfg.LLM.Endpoint,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		Temperature: cfg.LLM.Temperature,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	extractor := citations.NewExtractor(cat)
	chatService := services.NewChatService(kv, cat, extractor, client, logger)
	simulationService := services.NewSimulationService(kv, cat, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewStandardsHandler(cat, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(chatService, logger).RegisterRoutes(mux)
	handlers.NewSimulationsHandler(simulationService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting reglens-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
	)

	if cfg.TLSCertPath != "" {
		err = server.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger, or a development logger for local
// environments.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newStore builds the configured KV backend. For postgres it opens the
// connection pool and applies pending migrations first. The returned cleanup
// releases the pool (a no-op for memory).
func newStore(cfg *config.Config, logger *zap.Logger) (store.KV, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		return store.NewMemory(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		return nil, nil, err
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	if err := database.RunMigrations(sqlDB, cfg.Store.MigrationsPath, logger); err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	return store.NewPostgres(db), func() { db.Close() }, nil
}
