package ui

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sheetdesk/app"
)

// Server is the HTTP surface over the import and view services. It is the
// only interface a display layer needs: upload a file, then ask for the
// visible row slice for a given filter/sort/scroll state.
type Server struct {
	router   *chi.Mux
	imports  *app.ImportService
	views    *app.ViewService
	sessions *app.SessionManager
	maxBytes int64
}

// NewServer creates the HTTP server around the application services
func NewServer(imports *app.ImportService, views *app.ViewService, sessions *app.SessionManager, maxUploadBytes int64) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		imports:  imports,
		views:    views,
		sessions: sessions,
		maxBytes: maxUploadBytes,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	s.router.Route("/datasets", func(r chi.Router) {
		r.Get("/", s.handleListDatasets)
		r.Route("/{datasetID}", func(r chi.Router) {
			r.Get("/", s.handleGetDataset)
			r.Delete("/", s.handleDeleteDataset)
			r.Post("/import", s.handleImport)
			r.Get("/rows", s.handleRows)
			r.Post("/sessions", s.handleOpenSession)
		})
	})

	s.router.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Post("/filter", s.handleSessionFilter)
		r.Post("/scroll", s.handleSessionScroll)
		r.Post("/sort", s.handleSessionSort)
		r.Get("/rows", s.handleSessionRows)
		r.Delete("/", s.handleCloseSession)
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start begins listening on the configured port
func (s *Server) Start(port string) error {
	log.Printf("[Server] Listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}
