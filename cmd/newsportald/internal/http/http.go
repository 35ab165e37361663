package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ascww/newsportal/cmd/newsportald/internal/config"
	"github.com/ascww/newsportal/cmd/newsportald/internal/metrics"
	"github.com/ascww/newsportal/cmd/newsportald/internal/pages"
	"github.com/ascww/newsportal/cmd/newsportald/internal/upstream"
	"github.com/ascww/newsportal/cmd/newsportald/internal/views"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Listen serves the portal until ctx is cancelled, then shuts down gracefully.
func Listen(ctx context.Context, conf *config.Config, client *upstream.Client, registry *views.Registry) error {
	slog.Info("starting HTTP server", "address", conf.HTTPAddress)

	srv := &http.Server{
		Addr:              conf.HTTPAddress,
		Handler:           NewHandler(conf, client, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// NewHandler builds the routing table of the portal.
func NewHandler(conf *config.Config, client *upstream.Client, registry *views.Registry) http.Handler {
	e := &endpoints{Config: conf, Upstream: client, Views: registry}

	mux := http.NewServeMux()

	// pages
	e.handle(mux, "GET /{$}", "home", e.home)
	e.handle(mux, "GET /news/{id}", "newsPage", e.newsPage)
	e.handle(mux, "GET /views/{view}/more", "revealMore", e.revealMore)
	e.handle(mux, "POST /views/{view}/retry", "retry", e.retry)

	// proxy
	e.handle(mux, "GET /api/news", "listNews", e.listNews)
	e.handle(mux, "GET /api/news/{id}", "newsDetails", e.newsDetails)

	e.handle(mux, "GET /healthz", "healthz", e.healthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /static/", metrics.Instrument("GET /static/", http.StripPrefix("/static/", http.FileServerFS(pages.Static()))))

	return requestLogger(mux)
}

type endpoints struct {
	Config   *config.Config
	Upstream *upstream.Client
	Views    *views.Registry
}

func (e *endpoints) handle(mux *http.ServeMux, pattern, name string, fn func(http.ResponseWriter, *http.Request) error) {
	mux.Handle(pattern, metrics.Instrument(pattern, http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rec := metrics.NewStatusRecorder(rw)
		if err := fn(rec, req); err != nil {
			slog.Error("error in "+name+" HTTP handler", "error", err, "request", req.URL.String(), "statusSent", rec.Written())
			if !rec.Written() {
				rec.WriteHeader(http.StatusInternalServerError)
			}
		}
	})))
}

const requestIDHeader = "X-Request-ID"

// requestLogger tags every request with an id and logs it once handled.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		rw.Header().Set(requestIDHeader, id)

		start := time.Now()
		rec := metrics.NewStatusRecorder(rw)
		next.ServeHTTP(rec, req)

		slog.Info("handled request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.Status(),
			"duration", time.Since(start),
			"requestID", id,
		)
	})
}

func (e *endpoints) healthz(rw http.ResponseWriter, _ *http.Request) error {
	return writeJSON(rw, http.StatusOK, map[string]string{"status": "healthy"})
}
