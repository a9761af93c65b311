package survey

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/manatal"
	"github.com/spigell/ats-questionnaire/internal/questionnaire"
)

// Updater pushes custom fields to a candidate in the ATS.
type Updater interface {
	UpdateCustomFields(ctx context.Context, id int, fields manatal.CustomFields) (*manatal.Candidate, error)
}

// Result is the outcome of a processed questionnaire.
type Result struct {
	Scores    questionnaire.Scores `json:"scores"`
	Fields    manatal.CustomFields `json:"fields"`
	Candidate *manatal.Candidate   `json:"-"`
}

// Processor scores responses and writes the scores to the candidate.
type Processor struct {
	updater Updater
	logger  *zap.Logger
}

func NewProcessor(updater Updater, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Processor{updater: updater, logger: logger}
}

// Evaluate computes scores and custom fields without calling the ATS.
func Evaluate(responses questionnaire.Responses) *Result {
	scores := questionnaire.Score(responses)

	return &Result{
		Scores: scores,
		Fields: manatal.QuestionnaireFields(scores),
	}
}

// Process evaluates the responses and updates the candidate. A failed update is returned as is,
// the partially filled result still carries the computed scores.
func (p *Processor) Process(ctx context.Context, candidateID int, responses questionnaire.Responses) (*Result, error) {
	result := Evaluate(responses)

	p.logger.Debug("questionnaire scored",
		zap.Int("candidate_id", candidateID),
		zap.Int("responses", len(responses)),
		zap.Any("scores", result.Scores),
	)

	candidate, err := p.updater.UpdateCustomFields(ctx, candidateID, result.Fields)
	if err != nil {
		return result, fmt.Errorf("updating candidate %d: %w", candidateID, err)
	}
	result.Candidate = candidate

	p.logger.Info("questionnaire processed", zap.Int("candidate_id", candidateID))

	return result, nil
}
