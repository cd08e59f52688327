package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"friend-network/backend/internal/api"
	"friend-network/backend/internal/graph"
	"friend-network/backend/internal/network"
	"friend-network/backend/pkg/config"
	"friend-network/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting friend network API...",
		zap.String("env", cfg.Env),
		zap.String("store", cfg.StoreBackend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeStore, err := newService(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize network", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer closeStore()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(svc, logger.For("http"), api.Options{MetricsEnabled: cfg.MetricsEnabled})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	if err := serve(ctx, srv, cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return
	}
	log.Info("Server exited")
}

// newService builds the configured store and seeds it. The returned func
// releases the store's resources.
func newService(ctx context.Context, cfg *config.Config, log *zap.Logger) (*network.Service, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendNeo4j:
		driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, nil, err
		}
		repo := graph.NewRepository(driver)
		closeRepo := func() { _ = repo.Close(context.Background()) }

		if err := repo.EnsureSchema(ctx); err != nil {
			closeRepo()
			return nil, nil, err
		}
		svc := network.NewService(repo, logger.For("network"))

		count, err := repo.Count(ctx)
		if err != nil {
			closeRepo()
			return nil, nil, err
		}
		if count > 0 {
			log.Info("Graph already populated, skipping seed", zap.Int("people", count))
			return svc, closeRepo, nil
		}
		if err := svc.Seed(ctx, cfg.Relationships); err != nil {
			closeRepo()
			return nil, nil, err
		}
		return svc, closeRepo, nil

	default:
		svc := network.NewService(network.NewMemoryStore(logger.For("store")), logger.For("network"))
		if err := svc.Seed(ctx, cfg.Relationships); err != nil {
			return nil, nil, err
		}
		return svc, func() {}, nil
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, cfg *config.Config, log *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
