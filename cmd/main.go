package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"filler/internal/adapters"
	"filler/internal/bootstrap"
	gameDelivery "filler/internal/delivery/game"
	ownMiddleware "filler/internal/middleware"
	"filler/internal/repository"
	gameUC "filler/internal/usecase/game"
	"filler/internal/usecase/search"
)

const memoryAnalysisLimit = 4096

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisAdapter := adapters.NewAdapterRedis(cfg, logger)
	store := initAnalysisStore(ctx, logger, *cfg, redisAdapter)
	defer redisAdapter.Close(ctx)

	gameCfg, err := cfg.GameConfig()
	if err != nil {
		logger.Fatalw("Invalid board configuration", "error", err)
	}
	engine := search.NewEngine(logger, cfg.SearchWorkers)
	uc := gameUC.NewGameUseCase(gameCfg, cfg.SearchDepth, engine, store, logger)

	r := chi.NewRouter()
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(ownMiddleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	gameDelivery.NewGameHandler(logger, uc).Routes(r)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go handleShutdown(server, logger)

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("Failed to start server", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// initAnalysisStore prefers Redis and falls back to process memory when it
// is not configured or not reachable.
func initAnalysisStore(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config, redisAdapter *adapters.AdapterRedis) gameUC.AnalysisStore {
	if redisAdapter.Enabled() {
		if err := redisAdapter.Init(ctx); err != nil {
			log.Warnw("Redis unavailable, caching analyses in memory", "error", err)
		} else {
			return repository.NewRedisAnalysisStore(redisAdapter.GetClient(), cfg.AnalysisTTL)
		}
	}
	return repository.NewMemoryAnalysisStore(memoryAnalysisLimit)
}

func handleShutdown(server *http.Server, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
	}
}
