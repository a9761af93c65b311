package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/filtering"
	"github.com/spigell/ats-questionnaire/internal/logger"
	"github.com/spigell/ats-questionnaire/internal/manatal"
	"github.com/spigell/ats-questionnaire/internal/metrics"
	"github.com/spigell/ats-questionnaire/internal/questionnaire"
	"github.com/spigell/ats-questionnaire/internal/survey"
)

const errInvalidCandidateID = "Invalid candidate ID"

type questionnaireView struct {
	CandidateID string
	Questions   []questionnaire.Question
	Scale       []int
}

type scoreRow struct {
	Dimension questionnaire.Dimension
	Score     string
}

type successView struct {
	CandidateID int
	Scores      []scoreRow
	Candidate   string
}

type errorView struct {
	Error string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, viewIndex, nil)
}

func (s *Server) handleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, viewQuestionnaire, &questionnaireView{
		CandidateID: r.URL.Query().Get("candidate_id"),
		Questions:   questionnaire.Questions,
		Scale:       []int{1, 2, 3, 4, 5},
	})
}

func (s *Server) handleCreateCandidateForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, viewCreateCandidate, nil)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r, 0)

	if err := r.ParseForm(); err != nil {
		metrics.CandidatesCreated.WithLabelValues(metrics.ResultInvalid).Inc()
		s.render(w, r, http.StatusBadRequest, viewError, &errorView{Error: err.Error()})
		return
	}

	fullName, email := r.PostForm.Get("full_name"), strings.TrimSpace(r.PostForm.Get("email"))

	if existing := s.existingCandidate(r, email); existing != nil {
		metrics.CandidatesCreated.WithLabelValues(metrics.ResultExisting).Inc()
		log.Info("candidate already registered, reusing it", zap.Int("candidate_id", existing.ID))
		redirectToQuestionnaire(w, r, existing.ID)
		return
	}

	candidate, err := s.ats.CreateCandidate(r.Context(), fullName, email)
	if err != nil {
		metrics.CandidatesCreated.WithLabelValues(metrics.ResultFailure).Inc()
		log.Error("creating candidate", zap.Error(err))
		s.render(w, r, http.StatusBadGateway, viewError, &errorView{Error: err.Error()})
		return
	}

	metrics.CandidatesCreated.WithLabelValues(metrics.ResultSuccess).Inc()

	redirectToQuestionnaire(w, r, candidate.ID)
}

// existingCandidate returns the candidate already registered with email.
// A failed lookup does not block registration.
func (s *Server) existingCandidate(r *http.Request, email string) *manatal.Candidate {
	if email == "" {
		return nil
	}

	candidate, err := s.ats.FindCandidateByEmail(r.Context(), email)
	if err != nil {
		s.requestLogger(r, 0).Warn("looking up candidate by email", zap.Error(err))
		return nil
	}

	if candidate == nil || candidate.ID <= 0 {
		return nil
	}

	return candidate
}

func redirectToQuestionnaire(w http.ResponseWriter, r *http.Request, candidateID int) {
	target := "/questionnaire?" + url.Values{"candidate_id": {strconv.Itoa(candidateID)}}.Encode()
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		s.respondError(w, http.StatusBadRequest, errInvalidCandidateID)
		return
	}

	candidateID, ok := parseCandidateID(r.PostForm.Get("candidate_id"))
	if !ok {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		s.respondError(w, http.StatusBadRequest, errInvalidCandidateID)
		return
	}

	log := s.requestLogger(r, candidateID)
	responses := filtering.FormResponses(log, r.PostForm)
	if unknown := questionnaire.UnknownIDs(responses); len(unknown) > 0 {
		log.Debug("submission has unknown question ids", zap.Strings("ids", unknown))
	}

	result, err := s.processor.Process(r.Context(), candidateID, responses)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		log.Error("processing questionnaire", zap.Error(err))
		s.render(w, r, http.StatusBadGateway, viewError, &errorView{Error: err.Error()})
		return
	}

	if err := s.store.Save(r.Context(), candidateID, responses); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		log.Error("saving responses", zap.Error(err))
		s.render(w, r, http.StatusInternalServerError, viewError, &errorView{Error: err.Error()})
		return
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	s.render(w, r, http.StatusOK, viewSuccess, newSuccessView(candidateID, result))
}

// parseCandidateID accepts only positive integers.
func parseCandidateID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

func newSuccessView(candidateID int, result *survey.Result) *successView {
	view := &successView{CandidateID: candidateID}

	for _, dimension := range questionnaire.Dimensions {
		view.Scores = append(view.Scores, scoreRow{Dimension: dimension, Score: result.Scores[dimension]})
	}

	if result.Candidate != nil && result.Candidate.Raw != nil {
		// do not bother the error: Raw came from a decoded json document
		pretty, _ := json.MarshalIndent(result.Candidate.Raw, "", "  ")
		view.Candidate = string(pretty)
	}

	return view
}

func (s *Server) requestLogger(r *http.Request, candidateID int) *zap.Logger {
	return logger.WithRequest(s.logger, requestIDFromContext(r.Context()), candidateID)
}
