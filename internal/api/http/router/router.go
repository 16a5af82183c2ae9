package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/tokenauth/internal/api/http/handler"
	"github.com/dtroode/tokenauth/internal/api/http/middleware"
	"github.com/dtroode/tokenauth/internal/logger"
	"github.com/dtroode/tokenauth/internal/metrics"
	"github.com/dtroode/tokenauth/internal/model"
	"github.com/dtroode/tokenauth/internal/service"
)

// Router wires HTTP routes to handlers and middleware.
type Router struct {
	authService    *service.Auth
	tokenService   *service.TokenService
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	corsOrigin     string
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	authService *service.Auth,
	tokenService *service.TokenService,
	contextManager model.ContextManager,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	corsOrigin string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokenService:   tokenService,
		contextManager: contextManager,
		metrics:        m,
		gatherer:       gatherer,
		corsOrigin:     corsOrigin,
		logger:         logger,
	}
}

// Register builds the root handler.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()

	r.registerAuthRoutes(mux)
	r.registerAccountRoutes(mux)

	mux.HandleFunc("GET /{$}", handler.Root)
	mux.Handle("GET /metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))

	logging := middleware.NewLogging(r.logger)
	instrument := middleware.NewMetrics(r.metrics)
	cors := middleware.NewCORS(r.corsOrigin)

	return logging.Handle(instrument.Handle(cors.Handle(mux)))
}

func (r *Router) registerAuthRoutes(mux *http.ServeMux) {
	authHandler := handler.NewAuth(r.authService, r.tokenService, r.logger)

	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /refresh", authHandler.Refresh)
	mux.HandleFunc("DELETE /logout", authHandler.Logout)
}

func (r *Router) registerAccountRoutes(mux *http.ServeMux) {
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	identify := middleware.NewIdentify(r.authService, r.contextManager, r.logger)
	accountHandler := handler.NewAccount(r.contextManager)

	mux.Handle("GET /account", authenticate.Handle(identify.Handle(http.HandlerFunc(accountHandler.Get))))
}
