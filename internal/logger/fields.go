package logger

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidateID is the structured log field key for the ATS candidate id.
	FieldCandidateID = "candidate_id"
	// FieldRequestID is the structured log field key for the inbound request id.
	FieldRequestID = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger.
// A nil logger is replaced by a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// RequestFields returns the fields identifying a request and the candidate it works on.
// A non-positive candidate id and an empty request id are left out.
func RequestFields(requestID string, candidateID int) []zap.Field {
	candidate := ""
	if candidateID > 0 {
		candidate = strconv.Itoa(candidateID)
	}

	return StringFields(
		StringField{Key: FieldRequestID, Value: requestID},
		StringField{Key: FieldCandidateID, Value: candidate},
	)
}

// WithRequest attaches RequestFields to the provided logger.
func WithRequest(logger *zap.Logger, requestID string, candidateID int) *zap.Logger {
	return WithFields(logger, RequestFields(requestID, candidateID)...)
}
