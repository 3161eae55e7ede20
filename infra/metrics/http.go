package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/schoolrun/infra/logger"
)

// Handler returns the Prometheus scrape handler for the default gatherer.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on the given address.
// The server runs until the provided context is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return Serve(ctx, addr, mux)
}

// Serve runs h on addr until ctx is canceled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	log := logger.New("http")
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
		cancel()
	}()
	log.Infof("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
