// Package devserver serves a static site directory for local development
// with permissive CORS, cache-busting headers and web-font MIME types.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ErrPortInUse is returned by Listen when the configured port is taken.
var ErrPortInUse = errors.New("port already in use")

// Config holds server configuration.
type Config struct {
	Dir     string // directory served at /
	Host    string
	Port    int  // 0 picks a free port
	CORS    bool // allow any origin
	NoCache bool // forbid browser caching of every response
	Quiet   bool // disable request logging
}

// Server is the local static file server.
type Server struct {
	cfg        Config
	router     chi.Router
	httpServer *http.Server
	listener   net.Listener
}

// New creates a server for cfg. Nothing is bound until Listen.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if !s.cfg.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	if s.cfg.CORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))
	}
	r.Use(cacheControl(s.cfg.NoCache))
	r.Use(contentTypes)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/*", http.FileServer(http.Dir(s.cfg.Dir)))

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Listen binds the configured address. A busy port yields ErrPortInUse.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("%w: %s\nclose the other server on port %d or pick another with --port", ErrPortInUse, addr, s.cfg.Port)
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.listener = ln
	return nil
}

// URL returns the browsable address of the bound listener.
func (s *Server) URL() string {
	host := s.cfg.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	port := s.cfg.Port
	if s.listener != nil {
		port = s.listener.Addr().(*net.TCPAddr).Port
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// Serve handles requests until ctx is cancelled, then shuts down
// gracefully. Listen must have been called.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("devserver: Serve called before Listen")
	}

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.Serve(s.listener) }()

	log.Printf("sitekit dev server listening on %s", s.listener.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Start binds and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// HasIndex reports whether dir contains an index.html.
func HasIndex(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "index.html"))
	return err == nil && !info.IsDir()
}
