package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedbackSurvey() Survey {
	return Survey{
		ID:        "srv-1",
		UniqueURL: "abc123",
		Title:     "Feedback",
		IsActive:  true,
		Questions: []Question{
			{ID: "q1", Type: ShortAnswer, Text: "Your name?", Required: true, Order: 0},
			{ID: "q2", Type: MultipleChoice, Text: "Rate us", Required: true, Options: []string{"Good", "Bad"}, Order: 1},
			{ID: "q3", Type: LongAnswer, Text: "Anything else?", Order: 2},
		},
	}
}

func TestAssembleSubmission(t *testing.T) {
	survey := feedbackSurvey()

	answers := []Answer{
		{QuestionID: "q1", Answer: "Ada"},
		{QuestionID: "q2", Answer: "Good"},
	}

	before := time.Now().UTC()
	response, err := AssembleSubmission(survey, answers)
	require.NoError(t, err)

	assert.NotEmpty(t, response.ID)
	assert.Equal(t, "srv-1", response.SurveyID)
	assert.False(t, response.SubmittedAt.Before(before))
	assert.Equal(t, answers, response.Answers)
}

func TestAssembleSubmission_InactiveSurvey(t *testing.T) {
	survey := feedbackSurvey()
	survey.IsActive = false

	// even a fully valid answer set is rejected
	_, err := AssembleSubmission(survey, []Answer{
		{QuestionID: "q1", Answer: "Ada"},
		{QuestionID: "q2", Answer: "Good"},
	})
	assert.Equal(t, ErrSurveyInactive{SurveyID: "srv-1"}, err)
}

func TestAssembleSubmission_UnknownQuestion(t *testing.T) {
	_, err := AssembleSubmission(feedbackSurvey(), []Answer{
		{QuestionID: "q1", Answer: "Ada"},
		{QuestionID: "q2", Answer: "Good"},
		{QuestionID: "q9", Answer: "stray"},
	})
	assert.Equal(t, ErrUnknownQuestion{QuestionID: "q9"}, err)
}

func TestAssembleSubmission_InvalidSelection(t *testing.T) {
	_, err := AssembleSubmission(feedbackSurvey(), []Answer{
		{QuestionID: "q1", Answer: "Ada"},
		{QuestionID: "q2", Answer: "Great"},
	})
	assert.Equal(t, ErrInvalidSelection{QuestionID: "q2", Answer: "Great"}, err)
}

func TestAssembleSubmission_SelectionIsCaseSensitive(t *testing.T) {
	_, err := AssembleSubmission(feedbackSurvey(), []Answer{
		{QuestionID: "q1", Answer: "Ada"},
		{QuestionID: "q2", Answer: "good"},
	})
	assert.Equal(t, ErrInvalidSelection{QuestionID: "q2", Answer: "good"}, err)
}

func TestAssembleSubmission_MissingRequiredAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answers []Answer
		wantID  string
	}{
		{
			name:    "no answers at all",
			answers: nil,
			wantID:  "q1",
		},
		{
			name:    "blank answer counts as missing",
			answers: []Answer{{QuestionID: "q1", Answer: "  "}, {QuestionID: "q2", Answer: "Good"}},
			wantID:  "q1",
		},
		{
			name:    "second required question missing",
			answers: []Answer{{QuestionID: "q1", Answer: "Ada"}},
			wantID:  "q2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssembleSubmission(feedbackSurvey(), tt.answers)
			var missing ErrMissingRequiredAnswer
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantID, missing.QuestionID)
		})
	}
}

func TestAssembleSubmission_FirstMissingFollowsQuestionOrder(t *testing.T) {
	// container order scrambled: the order field decides which missing
	// question is reported first
	survey := feedbackSurvey()
	survey.Questions = []Question{survey.Questions[1], survey.Questions[2], survey.Questions[0]}

	_, err := AssembleSubmission(survey, nil)
	var missing ErrMissingRequiredAnswer
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "q1", missing.QuestionID)
}

func TestAssembleSubmission_MissingRequiredBeatsInvalidSelection(t *testing.T) {
	// required q1 left blank AND an invalid option picked for an optional
	// choice question: the missing required answer is what gets reported
	survey := feedbackSurvey()
	survey.Questions[1].Required = false

	_, err := AssembleSubmission(survey, []Answer{
		{QuestionID: "q2", Answer: "Great"},
	})
	var missing ErrMissingRequiredAnswer
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "q1", missing.QuestionID)
}

func TestAssembleSubmission_UnknownQuestionBeatsMissingRequired(t *testing.T) {
	// a stray question id is reported even when required answers are missing
	_, err := AssembleSubmission(feedbackSurvey(), []Answer{
		{QuestionID: "q9", Answer: "stray"},
	})
	assert.Equal(t, ErrUnknownQuestion{QuestionID: "q9"}, err)
}

func TestAssembleSubmission_SkipsBlankOptionalAnswers(t *testing.T) {
	response, err := AssembleSubmission(feedbackSurvey(), []Answer{
		{QuestionID: "q1", Answer: "Ada"},
		{QuestionID: "q2", Answer: "Good"},
		{QuestionID: "q3", Answer: "   "},
	})
	require.NoError(t, err)

	// no synthetic empty pairs are persisted
	require.Len(t, response.Answers, 2)
	for _, a := range response.Answers {
		assert.NotEqual(t, "q3", a.QuestionID)
	}
}
