package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/qfscore/internal/api"
	"github.com/dshills/qfscore/internal/cache"
	"github.com/dshills/qfscore/internal/config"
	"github.com/dshills/qfscore/internal/input"
	"github.com/dshills/qfscore/internal/profile"
	"github.com/dshills/qfscore/internal/redact"
	"github.com/dshills/qfscore/internal/schema"
	"github.com/dshills/qfscore/internal/store"
	"github.com/dshills/qfscore/internal/store/memory"
	"github.com/dshills/qfscore/internal/store/postgres"
)

func newServeCmd() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP scoring service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), dataPath)
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "Serve donors and projects from a batch file when DATABASE_URL is unset")
	return cmd
}

// newServiceLogger builds a production logger at the configured level.
func newServiceLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

// sources picks the donor and project data sources. Postgres wins over a
// batch file; with neither, both are nil.
func sources(ctx context.Context, logger *zap.Logger, cfg *config.Config, dataPath string) (store.ActivitySource, store.ProjectSource, func(), error) {
	if cfg.DatabaseURL != "" {
		if dataPath != "" {
			logger.Warn("DATABASE_URL set, ignoring --data", zap.String("data", dataPath))
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, errors.New(redact.Redact(err.Error()))
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		logger.Info("using postgres data source")
		return postgres.NewDonorRepository(pool), postgres.NewProjectRepository(pool), pool.Close, nil
	}

	if dataPath != "" {
		b, err := input.Load(dataPath)
		if err != nil {
			return nil, nil, nil, err
		}
		errs := schema.ValidateDonors(b.Donors)
		errs = append(errs, schema.ValidateProjects(b.Projects)...)
		if len(errs) > 0 {
			return nil, nil, nil, invalidInput(errs)
		}
		s, err := memory.FromBatch(b)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("using batch data source",
			zap.String("file", dataPath),
			zap.Int("donors", len(b.Donors)),
			zap.Int("projects", len(b.Projects)))
		return s, s, func() {}, nil
	}

	logger.Warn("no data source configured; donor and project lookups are disabled")
	return nil, nil, func() {}, nil
}

// resultCache connects to Redis when configured, otherwise keeps results in
// process memory.
func resultCache(ctx context.Context, logger *zap.Logger, cfg *config.Config) (cache.ResultCache, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis ping failed, using in-memory cache", zap.Error(err))
		_ = client.Close()
		return cache.NewMemory(), func() {}
	}
	return cache.NewRedis(client), func() { _ = client.Close() }
}

func runServe(ctx context.Context, dataPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return exitError(exitInput, "%v", err)
	}

	logger, err := newServiceLogger(cfg.LogLevel)
	if err != nil {
		return exitError(exitInput, "%v", err)
	}
	defer logger.Sync() //nolint:errcheck

	prof, err := profile.Resolve(cfg.Profile)
	if err != nil {
		return exitError(exitInput, "failed to load profile: %v", err)
	}

	donors, projects, closeSources, err := sources(ctx, logger, cfg, dataPath)
	if err != nil {
		return exitError(exitInput, "data source: %v", err)
	}
	defer closeSources()

	rc, closeCache := resultCache(ctx, logger, cfg)
	defer closeCache()

	gin.SetMode(gin.ReleaseMode)
	h := api.NewHandler(logger, api.Options{
		Profile:  prof,
		Donors:   donors,
		Projects: projects,
		Cache:    rc,
		CacheTTL: cfg.CacheTTL,
		Pool:     cfg.MatchingPool,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(logger, h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("profile", prof.Name))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
