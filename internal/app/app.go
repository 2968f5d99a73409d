package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/events"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps logger, Postgres, the optional Redis event stream and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.PoolDSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	checks := map[string]server.Check{
		"postgres": pool.Ping,
	}

	var (
		redisClient *redis.Client
		publisher   trivia.EventPublisher
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		publisher = events.NewPublisher(redisClient, cfg.Redis.EventsChannel, logger)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		logger.Warn().Msg("REDIS_ADDR not configured; question events disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	store := sqlcgen.NewStore(pool)
	questionRepo := repository.NewQuestionRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)

	triviaSvc := trivia.NewService(questionRepo, categoryRepo, trivia.ServiceOptions{
		PageSize:  cfg.Trivia.QuestionsPerPage,
		Publisher: publisher,
		Observer:  appMetrics,
	}, logger)

	apiServer := server.NewHTTPServer(cfg, server.Deps{
		Logger:   logger,
		Metrics:  appMetrics,
		Gatherer: registry,
		Checks:   checks,
		Trivia:   trivia.NewHTTPHandlers(triviaSvc, logger),
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run serves HTTP until ctx is canceled or a termination signal arrives, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
		defer cancel()
		if err := a.http.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("http shutdown error")
		}
		return nil
	})

	err := g.Wait()

	a.pool.Close()
	if a.redis != nil {
		if cerr := a.redis.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return err
}
