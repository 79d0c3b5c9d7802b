package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/babmate/backend/internal/config"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
	authsvc "github.com/babmate/backend/internal/services/auth"
	matchingsvc "github.com/babmate/backend/internal/services/matching"
	requestssvc "github.com/babmate/backend/internal/services/requests"
	statssvc "github.com/babmate/backend/internal/services/stats"
	storessvc "github.com/babmate/backend/internal/services/stores"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if err := pgrepo.RunMigrations(cfg.Postgres.DSN); err != nil {
		log.Warn("migrations failed, continuing in degraded mode", zap.Error(err))
	} else if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	requestRepo := pgrepo.NewRequestRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	storeRepo := pgrepo.NewStoreRepo(pool)
	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret)
	requestService := requestssvc.NewService(requestRepo)
	matchingService := matchingsvc.NewService(matchRepo)
	statsService := statssvc.NewService(matchRepo, statssvc.Config{
		CountPadding: cfg.Stats.CountPadding,
	})
	storeService := storessvc.NewService(storeRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	RegisterRoutes(r, Dependencies{
		JWTManager:      jwtManager,
		RequestService:  requestService,
		MatchingService: matchingService,
		StatsService:    statsService,
		StoreService:    storeService,
		MetricsRegistry: registry,
		Logger:          log,
		Config:          cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
