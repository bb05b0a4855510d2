package wire

import (
	"context"
	"net/http"
	"time"

	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// pinger is satisfied by *repository.Repository.
type pinger interface {
	Ping(ctx context.Context) error
}

func wireOps(
	r chi.Router,
	store pinger,
	config *utils.Config,
	registry *prometheus.Registry,
	log *zap.Logger,
) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusOK, map[string]string{
			"name":    config.App.Name,
			"graphql": GraphQLPath,
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("UNAVAILABLE"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
