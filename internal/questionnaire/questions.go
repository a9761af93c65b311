package questionnaire

// Dimension is one of the five personality traits a questionnaire is scored on.
type Dimension string

const (
	Openness           Dimension = "openness"
	Extraversion       Dimension = "extraversion"
	Agreeableness      Dimension = "agreeableness"
	Conscientiousness  Dimension = "conscientiousness"
	EmotionalStability Dimension = "emotionalstability"
)

// QuestionKeyPrefix is shared by every question id and is used to pick answers out of a submitted form.
const QuestionKeyPrefix = "q"

// Dimensions lists the traits in the order they are reported.
var Dimensions = []Dimension{
	Openness,
	Extraversion,
	Agreeableness,
	Conscientiousness,
	EmotionalStability,
}

type Question struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Dimension Dimension `json:"dimension"`
	// Reverse marks negatively keyed items. Scoring does not use it.
	Reverse bool `json:"reverse,omitempty"`
}

// Questions is the fixed 20-item questionnaire. It must not be modified at runtime.
var Questions = []Question{
	{ID: "q1", Text: "I am the life of the party.", Dimension: Extraversion},
	{ID: "q2", Text: "I feel little concern for others.", Dimension: Agreeableness, Reverse: true},
	{ID: "q3", Text: "I am always prepared.", Dimension: Conscientiousness},
	{ID: "q4", Text: "I get stressed out easily.", Dimension: EmotionalStability, Reverse: true},
	{ID: "q5", Text: "I have a rich vocabulary.", Dimension: Openness},
	{ID: "q6", Text: "I don't talk a lot.", Dimension: Extraversion, Reverse: true},
	{ID: "q7", Text: "I am interested in people.", Dimension: Agreeableness},
	{ID: "q8", Text: "I leave my belongings around.", Dimension: Conscientiousness, Reverse: true},
	{ID: "q9", Text: "I am relaxed most of the time.", Dimension: EmotionalStability},
	{ID: "q10", Text: "I have difficulty understanding abstract ideas.", Dimension: Openness, Reverse: true},
	{ID: "q11", Text: "I feel comfortable around people.", Dimension: Extraversion},
	{ID: "q12", Text: "I insult people.", Dimension: Agreeableness, Reverse: true},
	{ID: "q13", Text: "I pay attention to details.", Dimension: Conscientiousness},
	{ID: "q14", Text: "I worry about things.", Dimension: EmotionalStability, Reverse: true},
	{ID: "q15", Text: "I have a vivid imagination.", Dimension: Openness},
	{ID: "q16", Text: "I keep in the background.", Dimension: Extraversion, Reverse: true},
	{ID: "q17", Text: "I sympathize with others' feelings.", Dimension: Agreeableness},
	{ID: "q18", Text: "I make a mess of things.", Dimension: Conscientiousness, Reverse: true},
	{ID: "q19", Text: "I seldom feel blue.", Dimension: EmotionalStability},
	{ID: "q20", Text: "I am not interested in abstract ideas.", Dimension: Openness, Reverse: true},
}

// DimensionQuestions maps every dimension to the four questions averaged into its score.
// The mapping does not match Question.Dimension (q1 is tagged extraversion but scored as openness).
// Scores already stored in the ATS depend on it, so keep it as is.
var DimensionQuestions = map[Dimension][]string{
	Openness:           {"q1", "q6", "q11", "q16"},
	Extraversion:       {"q2", "q7", "q12", "q17"},
	Agreeableness:      {"q3", "q8", "q13", "q18"},
	Conscientiousness:  {"q4", "q9", "q14", "q19"},
	EmotionalStability: {"q5", "q10", "q15", "q20"},
}

// FindByID returns the question with the given id or nil.
func FindByID(id string) *Question {
	for i := range Questions {
		if Questions[i].ID == id {
			return &Questions[i]
		}
	}

	return nil
}
