package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wordweave/wordweave/internal/config"
	"github.com/wordweave/wordweave/internal/render"
	"github.com/wordweave/wordweave/internal/style"
)

// Server is the HTTP API server for wordweave.
type Server struct {
	router  chi.Router
	service *render.Service
	catalog *style.Catalog
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(service *render.Service, catalog *style.Catalog, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		service: service,
		catalog: catalog,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(logRequests(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Rendering endpoints, authenticated when an API key is set.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(requireAPIKey(s.cfg.APIKey, s.log))
		}

		r.Post("/api/render", s.handleRender)
		r.Get("/api/themes", s.handleThemes)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
