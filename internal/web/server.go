package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/manatal"
	"github.com/spigell/ats-questionnaire/internal/storage"
	"github.com/spigell/ats-questionnaire/internal/survey"
)

// ATS is the part of the ATS client used by the web front end.
type ATS interface {
	survey.Updater
	CreateCandidate(ctx context.Context, fullName, email string) (*manatal.Candidate, error)
	FindCandidateByEmail(ctx context.Context, email string) (*manatal.Candidate, error)
}

// Server serves the candidate registration and questionnaire pages.
type Server struct {
	ats       ATS
	processor *survey.Processor
	store     storage.Store
	views     *views
	logger    *zap.Logger
}

func NewServer(ats ATS, store storage.Store, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	views, err := parseViews()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Server{
		ats:       ats,
		processor: survey.NewProcessor(ats, logger),
		store:     store,
		views:     views,
		logger:    logger,
	}, nil
}

// Router returns the HTTP handler with every route and middleware attached.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/questionnaire", s.handleQuestionnaire).Methods(http.MethodGet)
	router.HandleFunc("/create_candidate", s.handleCreateCandidateForm).Methods(http.MethodGet)
	router.HandleFunc("/create_candidate", s.handleCreateCandidate).Methods(http.MethodPost)
	router.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodPost)
	router.HandleFunc("/webhook/manatal", s.handleWebhookStatus).Methods(http.MethodGet)
	router.HandleFunc("/webhook/manatal", s.handleWebhook).Methods(http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.Use(requestIDMiddleware, s.loggingMiddleware)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := storage.Check(r.Context(), s.store); err != nil {
		s.requestLogger(r, 0).Warn("response store is unavailable", zap.Error(err))
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding json response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
