package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	v1 "github.com/deepeshsaheb-tal/bookcritic/api/v1"
	"github.com/deepeshsaheb-tal/bookcritic/config"
	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/metrics"
	"github.com/deepeshsaheb-tal/bookcritic/store"
	"github.com/deepeshsaheb-tal/bookcritic/version"
	"github.com/deepeshsaheb-tal/bookcritic/worker"
)

// StartServer starts the HTTP server.
func StartServer(ctx context.Context, store *store.Store, pool worker.WorkPool, collector *metrics.Collector, jwtSecret string) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store, pool, collector, jwtSecret),
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
}

func setupHandler(store *store.Store, pool worker.WorkPool, collector *metrics.Collector, jwtSecret string) http.Handler {
	router := mux.NewRouter()

	// Setup the API routes
	v1.Server(router, store, pool, collector, jwtSecret)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if err := store.Ping(); err != nil {
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}
		if collector != nil {
			collector.ObserveDuration(metrics.MetricDBPingDuration, time.Since(start))
		}
		log.Debug("Database ping",
			zap.Duration("duration", time.Since(start)),
			zap.Int("open_connections", store.DBStats().OpenConnections))

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
