package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"ragbot/internal/config"
	"ragbot/internal/db"
	"ragbot/internal/handlers"
	"ragbot/internal/repositories"
	"ragbot/internal/routes"
	"ragbot/internal/services"
	"ragbot/internal/workers"
)

// Version is reported by the API root
const Version = "1.0.0"

// corsMiddleware adds CORS headers to all responses so the widget can be embedded anywhere
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Server owns the HTTP listener, its backends and the background workers
type Server struct {
	httpServer *http.Server
	redis      *db.RedisClient
	chroma     *db.ChromaDBClient
	pool       *workers.WorkerPool
	cfg        *config.Config
	logger     *log.Logger
}

// repositorySet groups the stores every service is built from
type repositorySet struct {
	bots      repositories.BotRepository
	documents repositories.DocumentRepository
	vectors   repositories.VectorRepository
	analytics repositories.AnalyticsRepository
}

// New wires repositories, services, handlers and workers from cfg
func New(cfg *config.Config) (*Server, error) {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)

	redisClient, chromaClient, repos, err := initializeRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	llm, err := services.NewLLMClient(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	embedder, err := services.NewEmbedder(cfg.Embeddings)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	logger.Printf("LLM provider: %s (%s), embeddings: %s", cfg.LLM.Provider, cfg.LLM.Model, cfg.Embeddings.Provider)

	serviceLogger := log.New(os.Stdout, "[RAG] ", log.LstdFlags)
	botService := services.NewBotService(repos.bots, repos.documents, serviceLogger)
	retriever := services.NewRetrieverService(embedder, repos.vectors, cfg.Chroma.Collection, serviceLogger)
	chatService := services.NewChatService(botService, retriever, llm, repos.analytics, serviceLogger)
	documentService := services.NewDocumentService(embedder, repos.documents, repos.vectors, repos.bots, repos.analytics, cfg.Chroma.Collection, serviceLogger)
	analyticsService := services.NewAnalyticsService(repos.analytics, serviceLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := botService.EnsureDefault(ctx); err != nil {
		return nil, err
	}
	logger.Println("✅ Default bot available")

	pool := workers.NewWorkerPool()
	retentionConfig := workers.DefaultWorkerConfig("analytics-retention")
	retentionConfig.Interval = cfg.Analytics.RetentionInterval
	pool.AddWorker(workers.NewRetentionWorker(workers.RetentionWorkerConfig{
		WorkerConfig: retentionConfig,
		DaysToKeep:   cfg.Analytics.RetentionDays,
		Cleaner:      analyticsService,
		Logger:       log.New(os.Stdout, "[WORKER] ", log.LstdFlags),
	}))

	handlerLogger := log.New(os.Stdout, "[HTTP] ", log.LstdFlags)
	h := &routes.Handlers{
		Home:             handlers.HomeHandler(Version, handlerLogger),
		Health:           handlers.HealthCheckHandler(pool),
		LLMHealth:        handlers.LLMHealthHandler(chatService),
		MethodNotAllowed: handlers.MethodNotAllowedHandler(handlerLogger),
		Chat:             handlers.NewChatHandler(chatService, retriever, handlerLogger),
		Bots:             handlers.NewBotHandler(botService, handlerLogger),
		Documents:        handlers.NewDocumentHandler(documentService, handlerLogger),
		Analytics:        handlers.NewAnalyticsHandler(analyticsService, handlerLogger),
	}

	router := mux.NewRouter()

	// Add Swagger endpoints
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))
	routes.RegisterRoutes(router, h)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           corsMiddleware(requestLogger(handlerLogger, router)),
			ReadHeaderTimeout: 10 * time.Second,
		},
		redis:  redisClient,
		chroma: chromaClient,
		pool:   pool,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Start runs the workers and serves until Shutdown is called
func (s *Server) Start(ctx context.Context) error {
	if err := s.pool.StartAll(ctx); err != nil {
		s.logger.Printf("⚠️  Failed to start workers: %v", err)
	} else {
		s.logger.Printf("✅ %d background worker(s) started", s.pool.Count())
	}

	s.logger.Printf("Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP requests, stops the workers and closes the backends
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.pool.StopAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("workers: %w", err))
	}
	s.chroma.Close()
	if err := s.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis: %w", err))
	}

	s.logger.Println("Server stopped")
	return errors.Join(errs...)
}

// initializeRepositories creates repository instances with Redis and ChromaDB
func initializeRepositories(cfg *config.Config, logger *log.Logger) (*db.RedisClient, *db.ChromaDBClient, *repositorySet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Printf("Connecting to Redis: %s (DB: %d)", cfg.Redis.Addr(), cfg.Redis.DB)
	redisClient := db.NewRedisClient(cfg.Redis)
	if err := redisClient.Ping(ctx); err != nil {
		logger.Println("   Hint: Ensure Redis is running (docker run -d -p 6379:6379 redis:7-alpine)")
		return nil, nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	logger.Println("✅ Redis connected successfully")

	logger.Printf("Connecting to ChromaDB: %s:%d", cfg.Chroma.Host, cfg.Chroma.Port)
	chromaClient := db.NewChromaDBClient(cfg.Chroma.ChromaDBConfig)
	vectorRepo := repositories.NewChromaVectorRepository(chromaClient)

	// The vector store may come up after us; chat reports retrieval errors until it does.
	if err := chromaClient.Heartbeat(ctx); err != nil {
		logger.Printf("⚠️  ChromaDB not reachable yet: %v", err)
		logger.Println("   Hint: Ensure ChromaDB is running (docker run -d -p 8000:8000 chromadb/chroma)")
	} else if err := vectorRepo.EnsureCollection(ctx, cfg.Chroma.Collection); err != nil {
		logger.Printf("⚠️  Could not prepare collection %s: %v", cfg.Chroma.Collection, err)
	} else {
		logger.Printf("✅ ChromaDB connected, collection %s ready", cfg.Chroma.Collection)
	}

	client := redisClient.GetClient()
	repos := &repositorySet{
		bots:      repositories.NewRedisBotRepository(client),
		documents: repositories.NewRedisDocumentRepository(client),
		vectors:   vectorRepo,
		analytics: repositories.NewRedisAnalyticsRepository(client, cfg.Analytics.MaxInteractions),
	}

	logger.Println("✅ All repositories initialized successfully")
	return redisClient, chromaClient, repos, nil
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE responses streaming through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// requestLogger logs method, path, status and duration of every request
func requestLogger(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Printf("%s %s %d %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
