package ui

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"malariadash/internal/session"
	"malariadash/internal/table"
)

const sessionCookie = "malariadash_session"

// Config holds what the web shell needs to know about limits.
type Config struct {
	MaxUploadBytes int64
	MaxRows        int
	PreviewRows    int
	SessionTTL     time.Duration
}

// Server is the dashboard's HTTP front end.
type Server struct {
	router *chi.Mux
	store  *session.Store
	config Config
	logger *slog.Logger
	now    func() time.Time
}

// NewServer wires routes and middleware around store.
func NewServer(config Config, store *session.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		config: config,
		logger: logger,
		now:    time.Now,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.indexHandler)
	s.router.Post("/upload", s.uploadHandler)
	s.router.Post("/reset", s.resetHandler)
	s.router.Post("/calculate", s.calculateHandler)
	s.router.Get("/export.xlsx", s.exportHandler)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.apiSummaryHandler)
		r.Post("/upload", s.apiUploadHandler)
		r.Post("/validate", s.validateFileHandler)
	})
	s.router.Get("/health", s.healthHandler)
}

func (s *Server) decodeOptions() table.Options {
	return table.Options{MaxRows: s.config.MaxRows}
}

// sessionID returns the caller's session, issuing a new cookie when there is none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && session.ValidID(c.Value) {
		return c.Value
	}
	id := session.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.SessionTTL.Seconds()),
	})
	return id
}

// currentUpload looks up the caller's table without issuing a cookie.
func (s *Server) currentUpload(r *http.Request) (session.Upload, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || !session.ValidID(c.Value) {
		return session.Upload{}, false
	}
	return s.store.Get(c.Value)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
