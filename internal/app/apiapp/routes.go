package apiapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/babmate/backend/internal/config"
	"github.com/babmate/backend/internal/metrics"
	authsvc "github.com/babmate/backend/internal/services/auth"
	matchingsvc "github.com/babmate/backend/internal/services/matching"
	requestssvc "github.com/babmate/backend/internal/services/requests"
	statssvc "github.com/babmate/backend/internal/services/stats"
	storessvc "github.com/babmate/backend/internal/services/stores"
	"github.com/babmate/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	JWTManager      *authsvc.JWTManager
	RequestService  *requestssvc.Service
	MatchingService *matchingsvc.Service
	StatsService    *statssvc.Service
	StoreService    *storessvc.Service
	MetricsRegistry *prometheus.Registry
	Logger          *zap.Logger
	Config          config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	requestsHandler := handlers.NewRequestsHandler(deps.RequestService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchingService, deps.StatsService)
	statsHandler := handlers.NewStatsHandler(deps.StatsService)
	storesHandler := handlers.NewStoresHandler(deps.StoreService)
	adminHandler := handlers.NewAdminHandler(deps.RequestService, deps.MatchingService)

	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)
	ownerMW := RequireRole("OWNER")
	submitMW := SubmitRateLimitMiddleware(newSubmitLimiter(
		deps.Config.Matcher.SubmitRatePerMinute,
		deps.Config.Matcher.SubmitBurst,
	))

	r.Get("/healthz", healthHandler.Handle)
	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsRegistry))
	}

	r.Route("/matchings", func(r chi.Router) {
		r.Use(authMW)
		r.With(submitMW).Post("/request", requestsHandler.Submit)
		r.Delete("/request/{id}", requestsHandler.Cancel)
		r.Get("/requests/my", requestsHandler.ListMine)
		r.Get("/my", matchesHandler.Active)
		r.Post("/{id}/confirm", matchesHandler.Confirm)
		r.Get("/log/my", matchesHandler.Log)
	})

	r.Route("/stats", func(r chi.Router) {
		r.Get("/matches", statsHandler.GlobalCount)
		r.With(authMW).Get("/matches/my", statsHandler.MyCount)
	})

	r.Route("/stores", func(r chi.Router) {
		r.Get("/", storesHandler.List)
		r.Get("/{id}", storesHandler.Get)
		r.With(authMW, ownerMW).Post("/", storesHandler.Create)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authMW, ownerMW)
		r.Post("/matchings/retire-all", adminHandler.RetireMatches)
		r.Delete("/requests", adminHandler.PurgeRequests)
		r.Delete("/matchings", adminHandler.PurgeMatches)
	})
}
