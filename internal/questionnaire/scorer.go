package questionnaire

import (
	"sort"
	"strconv"
)

// DefaultScore is reported for a dimension without a single answered question.
const DefaultScore = 3.0

// Responses maps question ids to the submitted answer. Values are expected in 1..5 but never checked.
type Responses map[string]int

// Scores holds one two-decimal score per dimension.
type Scores map[Dimension]string

// Score averages the answers present for each dimension's questions.
// Missing questions are skipped rather than counted as zero.
func Score(responses Responses) Scores {
	scores := make(Scores, len(Dimensions))

	for _, dimension := range Dimensions {
		// float64 keeps the sum of unvalidated answers from wrapping around.
		sum, count := 0.0, 0
		for _, id := range DimensionQuestions[dimension] {
			value, ok := responses[id]
			if !ok {
				continue
			}
			sum += float64(value)
			count++
		}

		avg := DefaultScore
		if count > 0 {
			avg = sum / float64(count)
		}

		scores[dimension] = FormatScore(avg)
	}

	return scores
}

// UnknownIDs returns the sorted response keys that name no question. Scoring ignores them.
func UnknownIDs(responses Responses) []string {
	var unknown []string
	for id := range responses {
		if FindByID(id) == nil {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)

	return unknown
}

// FormatScore renders a score with exactly two decimal digits.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ExampleResponses is the sample answer set used when the CLI gets no responses.
func ExampleResponses() Responses {
	return Responses{
		"q1": 5, "q6": 4, "q11": 5, "q16": 5,
		"q2": 4, "q7": 5, "q12": 4, "q17": 5,
		"q3": 5, "q8": 5, "q13": 4, "q18": 5,
		"q4": 4, "q9": 5, "q14": 4, "q19": 5,
		"q5": 4, "q10": 4, "q15": 4, "q20": 4,
	}
}
