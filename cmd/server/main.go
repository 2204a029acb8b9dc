package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/threat0512/HealthFactAI/configs"
	"github.com/threat0512/HealthFactAI/internal/application/services"
	"github.com/threat0512/HealthFactAI/internal/core/allowlist"
	"github.com/threat0512/HealthFactAI/internal/core/cloze"
	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/quiz"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/classify"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/db"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/extract"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/health"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/httpserver"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/llm"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/memcache"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/redis"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/repositories"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/rerank"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/websearch"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting HealthFactAI API...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(database, logger)
	factCardRepo := repositories.NewFactCardRepository(database, logger)
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)

	// Retrieval pipeline: allowlist, caches, providers, extractor, reranker
	allow := allowlist.New(cfg.Search.AllowedDomains)

	searchCache := memcache.New[[]evidence.SearchResult](cfg.Search.SearchCacheSize, cfg.Search.SearchCacheTTL)
	pageCache := memcache.New[*evidence.ExtractedPage](cfg.Search.PageCacheSize, cfg.Search.PageCacheTTL)
	quizCache := memcache.New[*quiz.Quiz](cfg.Search.SearchCacheSize, cfg.Search.PageCacheTTL)

	httpClient := &http.Client{Timeout: cfg.Search.RequestTimeout}

	primary := websearch.NewLangSearch(cfg.Search.LangSearchAPIKey, httpClient, allow)
	fallback := websearch.NewBing(cfg.Search.BingAPIKey, httpClient, allow)
	searcher := websearch.NewVerifiedSearcher(primary, fallback, searchCache, logger)

	extractor := extract.New(httpClient, allow, pageCache, logger)

	// USE_EMBED_RERANK selects semantic rerank over BM25 for verification;
	// USE_LANGSEARCH_RERANK gates the actual LangSearch call. With only the
	// former set, the reranker degrades to passthrough order.
	reranker := rerank.NewLangSearch(cfg.Search.LangSearchAPIKey, cfg.Search.UseLangSearchRerank, httpClient, logger)

	classifier := classify.NewKeywordClassifier()

	// Quiz generation: LLM when a key is configured, cloze fallback always.
	var generator ports.QuizGenerator
	if llmGen := llm.NewGenerator(cfg.Search.OpenAIAPIKey, logger); llmGen.Enabled() {
		generator = llmGen
		logger.Info("LLM quiz generation enabled")
	} else {
		logger.Info("LLM quiz generation disabled; using cloze fallback only")
	}
	clozeGen := cloze.New(time.Now().UnixNano())

	// Services
	progressService := services.NewProgressService(userRepo, classifier, logger)
	authService := services.NewAuthService(userRepo, &cfg.JWT, logger)
	factCardService := services.NewFactCardService(factCardRepo, classifier, logger)
	searchService := services.NewSearchService(allow, searcher, extractor, reranker, cfg.Search.UseEmbedRerank, progressService, logger)
	quizService := services.NewQuizService(allow, searcher, extractor, generator, clozeGen, quizCache, progressService, logger)

	rateLimiterConfig := &services.RateLimiterConfig{
		DefaultRequestsPerMinute: cfg.RateLimit.DefaultRequestsPerMinute,
		BurstMultiplier:          cfg.RateLimit.BurstMultiplier,
		Window:                   cfg.RateLimit.Window,
		KeyPrefix:                cfg.RateLimit.KeyPrefix,
	}
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, rateLimiterConfig, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Initialize HTTP server using ServerDeps for clearer wiring
	deps := httpserver.ServerDeps{
		AuthService:        authService,
		SearchService:      searchService,
		QuizService:        quizService,
		ProgressService:    progressService,
		FactCardService:    factCardService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
