package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/AlexLecu/LLMKGraph/internal/api/handlers"
	mw "github.com/AlexLecu/LLMKGraph/internal/api/middleware"
	"github.com/AlexLecu/LLMKGraph/internal/buildconfig"
	"github.com/AlexLecu/LLMKGraph/internal/config"
	"github.com/AlexLecu/LLMKGraph/internal/domain"
	"github.com/AlexLecu/LLMKGraph/internal/embedding"
	"github.com/AlexLecu/LLMKGraph/internal/extract"
	"github.com/AlexLecu/LLMKGraph/internal/nlp"
	"github.com/AlexLecu/LLMKGraph/internal/reasoner"
	"github.com/AlexLecu/LLMKGraph/internal/refine"
	"github.com/AlexLecu/LLMKGraph/internal/service"
	"github.com/AlexLecu/LLMKGraph/internal/store"
)

// App holds the router plus request counters for the metrics endpoint.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	entityStore := store.NewEntityStore(db)
	relationStore := store.NewRelationStore(db)

	// External clients via provider factory
	extractor, err := extract.NewClient(config.ExtractionProvider(), config.ExtractionAPIKey())
	if err != nil {
		logger.Warn("extraction client initialization failed, using mock",
			zap.String("provider", config.ExtractionProvider()), zap.Error(err))
		extractor = extract.NewMockClient()
	} else {
		logger.Info("extraction client initialized", zap.String("provider", config.ExtractionProvider()))
	}

	embedder, err := embedding.NewClient(config.EmbeddingProvider(), config.EmbeddingAPIKey())
	if err != nil {
		logger.Warn("embedding client initialization failed, using mock",
			zap.String("provider", config.EmbeddingProvider()), zap.Error(err))
		embedder = embedding.NewMockClient()
	} else {
		logger.Info("embedding client initialized", zap.String("provider", config.EmbeddingProvider()))
	}

	termExtractor, err := nlp.NewClient(config.TermExtractorProvider(), config.NLPServiceURL())
	if err != nil {
		logger.Warn("term extractor initialization failed, using heuristic",
			zap.String("provider", config.TermExtractorProvider()), zap.Error(err))
		termExtractor = nlp.NewHeuristicClient()
	} else {
		logger.Info("term extractor initialized", zap.String("provider", config.TermExtractorProvider()))
	}

	reasonerClient := reasoner.NewHTTPClient(config.ReasonerURL())

	// Services
	searchSvc := service.NewEntitySearch(entityStore, embedder, logger)
	locatorSvc := service.NewLocatorService(termExtractor, searchSvc, logger, config.TopKPerTerm(), config.SearchTimeout())
	expanderSvc := service.NewExpanderService(relationStore, logger, config.PerEntityRelationLimit(), config.SearchTimeout())
	assemblerSvc := service.NewAssembler(config.MaxEntities(), config.MaxRelationsPerEntity(), config.MaxContextChars())
	querySvc := service.NewQueryService(locatorSvc, expanderSvc, assemblerSvc, logger)
	ingestSvc := service.NewIngestService(extractor, refine.NewRefiner(logger), refine.NewTypeResolver(logger), relationStore, entityStore, embedder, logger)
	reasonSvc := service.NewReasonService(relationStore, reasonerClient, logger)

	// Handlers
	relationsHandler := handlers.NewRelationsHandler(ingestSvc)
	queryHandler := handlers.NewQueryHandler(querySvc, relationStore)
	reasonHandler := handlers.NewReasonHandler(reasonSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/relations", func(r chi.Router) {
			r.Post("/preview", relationsHandler.Preview)
			r.Post("/", relationsHandler.Ingest)
			r.Post("/bulk", relationsHandler.IngestBulk)
		})
		r.Get("/query", queryHandler.Query)
		r.Get("/graph/search", queryHandler.GraphSearch)
		r.Post("/reason", reasonHandler.Refresh)
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(db *pgxpool.Pool, logger *zap.Logger) *chi.Mux {
	return NewApp(db, logger).Router
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"build":      buildconfig.VersionInfo(),
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.EntityStore       = (*store.EntityStore)(nil)
	_ domain.RelationStore     = (*store.RelationStore)(nil)
	_ domain.EntitySearcher    = (*service.EntitySearch)(nil)
	_ domain.RelationExtractor = (*extract.OpenAIClient)(nil)
	_ domain.RelationExtractor = (*extract.MistralClient)(nil)
	_ domain.RelationExtractor = (*extract.MockClient)(nil)
	_ domain.EmbeddingClient   = (*embedding.OpenAIClient)(nil)
	_ domain.EmbeddingClient   = (*embedding.MockClient)(nil)
	_ domain.TermExtractor     = (*nlp.ServiceClient)(nil)
	_ domain.TermExtractor     = (*nlp.HeuristicClient)(nil)
	_ domain.TermExtractor     = (*nlp.MockClient)(nil)
	_ domain.Reasoner          = (*reasoner.HTTPClient)(nil)
	_ domain.Reasoner          = (*reasoner.MockClient)(nil)
)
