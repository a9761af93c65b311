package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/metrics"
)

// Event types sent by the ATS webhook.
const (
	EventCandidateCreated = "candidate.created"
	EventCandidateUpdated = "candidate.updated"
	EventResumeUploaded   = "candidate.resume.uploaded"

	eventUnknown = "unknown"
)

type webhookEvent struct {
	EventType   string                 `json:"event_type"`
	CandidateID interface{}            `json:"candidate_id"`
	Data        map[string]interface{} `json:"data"`
}

func (s *Server) handleWebhookStatus(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Manatal webhook endpoint is active"})
}

// handleWebhook acknowledges ATS events. They are only logged and counted.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var event webhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		s.requestLogger(r, 0).Warn("decoding webhook event", zap.Error(err))
		s.respondError(w, http.StatusBadRequest, "Webhook processing failed")
		return
	}

	log := s.requestLogger(r, 0).With(
		zap.String("event_type", event.EventType),
		zap.String("candidate_id", candidateIDString(event.CandidateID)),
		zap.Bool("signed", r.Header.Get("X-Manatal-Signature") != ""),
	)

	label := event.EventType
	switch event.EventType {
	case EventCandidateCreated:
		log.Info("candidate created in the ATS")
	case EventCandidateUpdated:
		log.Info("candidate updated in the ATS")
	case EventResumeUploaded:
		log.Info("resume uploaded to the ATS", zap.Any("data", event.Data))
	default:
		label = eventUnknown
		log.Info("unhandled webhook event")
	}

	metrics.WebhookEvents.WithLabelValues(label).Inc()

	s.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func candidateIDString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
