package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dvcrn/hax-poster/internal/credentials"
)

// Server exposes credential status and seeding for hosted deployments where
// the interactive setup flow cannot run.
type Server struct {
	store    credentials.Store
	router   chi.Router
	logger   zerolog.Logger
	adminKey string
	now      func() time.Time
}

func New(logger zerolog.Logger, store credentials.Store, adminKey string) *Server {
	s := &Server{
		store:    store,
		router:   chi.NewRouter(),
		logger:   logger,
		adminKey: adminKey,
		now:      time.Now,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)
	s.router.Get("/health", s.healthHandler)
	s.router.Post("/admin/credentials", s.adminMiddleware(s.credentialsHandler))
	s.router.Get("/admin/credentials/status", s.adminMiddleware(s.credentialsStatusHandler))
	s.router.NotFound(s.notFoundHandler)
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("remote_addr", r.RemoteAddr).
			Str("user_agent", r.UserAgent()).
			Msg("Incoming request")
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Dur("duration", time.Since(start)).
			Msg("Finished request")
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn().
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Str("remote_addr", r.RemoteAddr).
		Str("user_agent", r.UserAgent()).
		Msg("Unhandled route")
	http.NotFound(w, r)
}

// credentialsHandler handles POST /admin/credentials, replacing the stored
// record with one minted elsewhere.
func (s *Server) credentialsHandler(w http.ResponseWriter, r *http.Request) {
	var rec credentials.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.logger.Error().Err(err).Msg("Failed to parse request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := rec.Validate(); err != nil {
		http.Error(w, "Invalid credentials: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Save(&rec); err != nil {
		s.logger.Error().Err(err).Msg("Failed to store credentials")
		http.Error(w, "Failed to update credentials", http.StatusInternalServerError)
		return
	}

	s.logger.Info().Str("name", rec.DisplayName).Msg("LinkedIn credentials updated successfully")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": "Credentials updated successfully",
	})
}

type statusResponse struct {
	State              string     `json:"state"`
	HasCredentials     bool       `json:"hasCredentials"`
	Name               string     `json:"name,omitempty"`
	PersonID           string     `json:"personId,omitempty"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	MinutesUntilExpiry int64      `json:"minutesUntilExpiry"`
	IsExpired          bool       `json:"isExpired"`
	Error              string     `json:"error,omitempty"`
}

// credentialsStatusHandler handles GET /admin/credentials/status
func (s *Server) credentialsStatusHandler(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	st := credentials.Classify(s.store, now, s.logger)

	resp := statusResponse{
		State:          st.State.String(),
		HasCredentials: st.Record != nil,
		IsExpired:      st.State == credentials.ExpiredCredential,
	}
	if st.Record != nil {
		expiresAt := st.Record.ExpiresAt()
		resp.Name = st.Record.DisplayName
		resp.PersonID = st.Record.PersonID
		resp.ExpiresAt = &expiresAt
		resp.MinutesUntilExpiry = st.MinutesUntilExpiry(now)
	}
	if st.Reason != nil {
		resp.Error = st.Reason.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
