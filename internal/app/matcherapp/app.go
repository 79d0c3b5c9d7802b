package matcherapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/babmate/backend/internal/config"
	"github.com/babmate/backend/internal/jobs/matchmaker"
	"github.com/babmate/backend/internal/metrics"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
	redrepo "github.com/babmate/backend/internal/repo/redis"
)

// App runs the periodic matching loop. Unlike the api app it refuses to start
// without postgres; a matcher with no storage has nothing to do.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	postgres *pgxpool.Pool
	redis    *goredis.Client
	job      *matchmaker.Job
	registry *prometheus.Registry
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	if err := pgrepo.RunMigrations(cfg.Postgres.DSN); err != nil {
		return nil, fmt.Errorf("run migrations for matcher app: %w", err)
	}
	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("init postgres for matcher app: %w", err)
	}

	var redisClient *goredis.Client
	var locker matchmaker.RunLocker
	if cfg.Redis.Addr != "" {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		locker = redrepo.NewLeaseRepo(redisClient)
	} else {
		logger.Warn("redis addr is empty, running without the single-flight lease")
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	job := matchmaker.New(matchmaker.Dependencies{
		Requests: pgrepo.NewRequestRepo(pool),
		Matches:  pgrepo.NewMatchRepo(pool),
		Stores:   pgrepo.NewStoreRepo(pool),
		Locker:   locker,
		Metrics:  collector,
		Logger:   logger,
	}, matchmaker.Config{
		LocalOffset:  cfg.Matcher.LocalOffset,
		DropLeftover: cfg.Matcher.DropLeftover,
		LeaseTTL:     cfg.Matcher.LeaseTTL,
	})

	return &App{
		cfg:      cfg,
		logger:   logger,
		postgres: pool,
		redis:    redisClient,
		job:      job,
		registry: registry,
	}, nil
}

// Run ticks the matcher until the context is canceled. A failed run is
// logged and the loop keeps going; transient database trouble must not kill
// the scheduler.
func (a *App) Run(ctx context.Context) error {
	interval := a.cfg.Matcher.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	a.logger.Info("matcher started", zap.Duration("interval", interval))

	if a.cfg.Matcher.MetricsAddr != "" {
		go a.serveMetrics(ctx)
	}

	if err := a.job.Run(ctx); err != nil {
		a.logger.Error("matching run failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("matcher stopped")
			return nil
		case <-ticker.C:
			if err := a.job.Run(ctx); err != nil {
				a.logger.Error("matching run failed", zap.Error(err))
			}
		}
	}
}

func (a *App) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.registry))

	server := &http.Server{Addr: a.cfg.Matcher.MetricsAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	a.logger.Info("matcher metrics listening", zap.String("addr", a.cfg.Matcher.MetricsAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Warn("matcher metrics server failed", zap.Error(err))
	}
}

func (a *App) Close() {
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
