package manatal

import "github.com/spigell/ats-questionnaire/internal/questionnaire"

// Custom field names and values configured in the ATS.
const (
	FieldQuizCompleted     = "quiz_completed"
	FieldApplicationFlow   = "application_flow"
	FieldApplicationSource = "application_source"
	personalityFieldPrefix = "personality_"

	FlowRegistration           = "Registration"
	FlowQuestionnaireCompleted = "Questionnaire Completed"
	SourceWebsite              = "Website"
)

// CustomFields is the custom_fields object of a candidate.
type CustomFields map[string]interface{}

// RegistrationFields are attached to every newly created candidate.
func RegistrationFields() CustomFields {
	return CustomFields{
		FieldQuizCompleted:     false,
		FieldApplicationFlow:   FlowRegistration,
		FieldApplicationSource: SourceWebsite,
	}
}

// QuestionnaireFields builds the update payload for a completed questionnaire:
// the completion flags plus one personality_<dimension> field per dimension.
func QuestionnaireFields(scores questionnaire.Scores) CustomFields {
	fields := CustomFields{
		FieldQuizCompleted:     true,
		FieldApplicationFlow:   FlowQuestionnaireCompleted,
		FieldApplicationSource: SourceWebsite,
	}

	for _, dimension := range questionnaire.Dimensions {
		score, ok := scores[dimension]
		if !ok {
			score = questionnaire.FormatScore(questionnaire.DefaultScore)
		}
		fields[PersonalityField(dimension)] = score
	}

	return fields
}

// PersonalityField returns the custom field name holding the score of a dimension.
func PersonalityField(dimension questionnaire.Dimension) string {
	return personalityFieldPrefix + string(dimension)
}
