// internal/wire/wire.go
package wire

import (
	"fmt"

	"book-review/internal/adaptor"
	"book-review/internal/data/repository"
	"book-review/internal/usecase"
	"book-review/pkg/middleware"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// GraphQLPath is where the GraphQL endpoint is mounted.
const GraphQLPath = "/graphql"

// App holds the wired HTTP stack.
type App struct {
	Router  *chi.Mux
	Handler *adaptor.Handler
}

// Wiring builds services, resolvers and the router. Metrics are registered
// on registry and exposed from it.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	tokens *utils.JWTManager,
	registry *prometheus.Registry,
	logger *zap.Logger,
) (*App, error) {
	// Initialize services and handlers
	service := usecase.NewService(repo, tokens, logger)
	handler, err := adaptor.NewHandler(service, logger, registry)
	if err != nil {
		return nil, err
	}

	httpMetrics, err := middleware.NewHTTPMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register http metrics: %w", err)
	}

	router := setupRouter(handler, repo, config, tokens, httpMetrics, registry, logger)

	return &App{
		Router:  router,
		Handler: handler,
	}, nil
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	tokens *utils.JWTManager,
	httpMetrics *middleware.HTTPMetrics,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.Origins))
	r.Use(httpMetrics.Handler)

	// Apply routes
	wireGraphQL(r, handler, tokens, logger)
	wireOps(r, repo, config, registry, logger)

	return r
}
