package filtering

import (
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/questionnaire"
)

// Filter represents a single step narrowing submitted form fields down to question answers.
type Filter interface {
	Name() string
	Apply(fields map[string]string) (map[string]string, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// DefaultSteps keeps fields named like questions whose value is a non-negative integer.
func DefaultSteps() []Filter {
	return []Filter{
		NewKeyPrefix(questionnaire.QuestionKeyPrefix),
		NewDigitsOnly(),
	}
}

// Run executes the supplied filters sequentially and returns the fields left.
// The input map is not modified.
func Run(logger *zap.Logger, steps []Filter, fields map[string]string) map[string]string {
	current := make(map[string]string, len(fields))
	for k, v := range fields {
		current[k] = v
	}

	for _, step := range steps {
		next, info := step.Apply(current)

		if logger != nil {
			logger.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		current = next
	}

	return current
}

// FormResponses extracts question answers from a submitted form.
// Only the first value of every key is considered.
func FormResponses(logger *zap.Logger, form url.Values) questionnaire.Responses {
	fields := make(map[string]string, len(form))
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		fields[key] = values[0]
	}

	kept := Run(logger, DefaultSteps(), fields)

	responses := make(questionnaire.Responses, len(kept))
	for key, value := range kept {
		n, err := strconv.Atoi(value)
		if err != nil {
			// digits only, so this is an overflow
			if logger != nil {
				logger.Warn("skipping unparsable answer", zap.String("question", key), zap.Error(err))
			}
			continue
		}
		responses[key] = n
	}

	return responses
}
