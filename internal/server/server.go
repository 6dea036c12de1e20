package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	catalog *catalog.Loader
	log     *slog.Logger
	apiKey  string
	lc      WhoIsClient
	router  chi.Router
}

// New creates a new Server with all routes configured. The import API key
// guards only the history-import endpoint; everything else is scoped by
// the identity middleware.
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		catalog: catalog.NewLoader(db, log),
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale switches identity resolution from the dev fallback to
// Tailscale WhoIs lookups. Must be called before serving.
func (s *Server) SetTailscale(lc WhoIsClient) {
	s.lc = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identity)

		r.Get("/me", s.handleMe)

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handleExerciseCatalog)
			r.Post("/", s.handleCreateCustomExercise)
			r.Put("/{id}", s.handleUpdateCustomExercise)
			r.Delete("/{id}", s.handleDeleteCustomExercise)
			r.Put("/overrides", s.handleUpsertOverride)
			r.Put("/overrides/{id}", s.handleUpsertOverride)
			r.Delete("/overrides/{id}", s.handleDeleteOverride)
			r.Post("/hidden", s.handleHideExercise)
			r.Delete("/hidden/{id}", s.handleUnhideExercise)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.handleTemplates)
			r.Post("/", s.handleCreateTemplate)
			r.Put("/{id}", s.handleUpdateTemplate)
			r.Delete("/{id}", s.handleDeleteTemplate)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleQuerySessions)
			r.Post("/", s.handleStartSession)
			r.Get("/{date}", s.handleGetSession)
			r.Delete("/{date}", s.handleDeleteSession)
			r.Post("/{date}/sets", s.handleLogSet)
			r.Post("/{date}/pause", s.handlePauseSession)
			r.Post("/{date}/resume", s.handleResumeSession)
			r.Post("/{date}/complete", s.handleCompleteSession)
			r.Post("/{date}/cancel", s.handleCancelSession)
		})

		r.Get("/sets", s.handleQuerySets)

		r.Get("/records", s.handleRecords)
		r.Get("/records/recent", s.handleRecentRecords)

		r.Get("/stats", s.handleStats)
		r.Get("/stats/streaks", s.handleStreaks)
		r.Get("/stats/volume", s.handleTrainingVolume)

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", s.handleEquipment)
			r.Post("/", s.handleUpsertEquipment)
			r.Put("/{id}", s.handleUpsertEquipment)
			r.Delete("/{id}", s.handleDeleteEquipment)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", s.handleLocations)
			r.Get("/nearest", s.handleNearestLocation)
			r.Post("/", s.handleUpsertLocation)
			r.Put("/{id}", s.handleUpsertLocation)
			r.Delete("/{id}", s.handleDeleteLocation)
		})

		r.Route("/import", func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/", s.handleImport)
			r.Get("/logs", s.handleImportLogs)
		})
	})
}
