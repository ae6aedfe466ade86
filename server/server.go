// Package server exposes the dashboard over HTTP: rendered pages, a JSON
// API and a websocket channel that serves view updates per interaction.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rustyeddy/pricedash/dashboard"
	"github.com/rustyeddy/pricedash/internal/logger"
)

// Options configure the server around the dashboard.
type Options struct {
	// LogoPath is a local image served at /logo; empty disables the route.
	LogoPath string
	Logger   *logger.Logger
}

type Server struct {
	dash     *dashboard.Dashboard
	log      *logger.Logger
	logoPath string
	router   *mux.Router
	upgrader websocket.Upgrader
}

func New(d *dashboard.Dashboard, opts Options) *Server {
	s := &Server{
		dash:     d,
		log:      opts.Logger,
		logoPath: opts.LogoPath,
		router:   mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.logRequests)

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/measures/{measure}", s.handleMeasure).Methods(http.MethodGet)
	r.HandleFunc("/products", s.handleProducts).Methods(http.MethodGet)
	if s.logoPath != "" {
		r.HandleFunc("/logo", s.handleLogo).Methods(http.MethodGet)
	}
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleLive)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/summary", s.apiSummary).Methods(http.MethodGet)
	api.HandleFunc("/measures/{measure}", s.apiMeasure).Methods(http.MethodGet)
	api.HandleFunc("/products", s.apiProducts).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.URL.Path == "/ws" {
			// the upgrader needs the raw writer to hijack the connection
			next.ServeHTTP(w, r)
			s.log.Debug("%s %s live session closed after %s", r.Method, r.URL.Path, time.Since(start))
			return
		}
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Debug("%s %s %d %s", r.Method, r.URL.RequestURI(), sw.status, time.Since(start))
	})
}
