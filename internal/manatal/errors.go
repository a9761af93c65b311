package manatal

import (
	"fmt"

	"github.com/spigell/ats-questionnaire/internal/logger"
)

const maxErrorBodyLength = 512

// APIError is returned for transport failures and non-2xx answers from the API.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}

	msg := fmt.Sprintf("%s %s: bad status: %s", e.Method, e.URL, e.Status)
	if body := logger.TruncateForLog(e.Body, maxErrorBodyLength); body != "" {
		msg += ": " + body
	}

	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}
