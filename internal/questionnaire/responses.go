package questionnaire

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responsesSchema accepts a flat object of integer answers keyed by question id.
const responsesSchema = `{
  "type": "object",
  "additionalProperties": {"type": "integer"}
}`

// ParseResponses validates and decodes a JSON document of question answers.
func ParseResponses(data []byte) (Responses, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(responsesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing responses: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			messages = append(messages, e.String())
		}
		return nil, fmt.Errorf("invalid responses: %s", strings.Join(messages, "; "))
	}

	// Integers such as 4.0 pass the schema, so decode loosely and convert.
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding responses: %w", err)
	}

	responses := make(Responses, len(raw))
	for id, value := range raw {
		responses[id] = int(value)
	}

	return responses, nil
}

// ReadResponsesFile loads answers from a JSON file.
func ReadResponsesFile(path string) (Responses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading responses file %q: %w", path, err)
	}

	return ParseResponses(data)
}
