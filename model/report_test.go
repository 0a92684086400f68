package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportSurvey() Survey {
	return Survey{
		ID:       "srv-1",
		Title:    "Feedback",
		IsActive: true,
		Questions: []Question{
			{ID: "q1", Type: ShortAnswer, Text: "Your name?", Order: 0},
			{ID: "q2", Type: MultipleChoice, Text: "Would you recommend us?", Options: []string{"Yes", "No"}, Order: 1},
			{ID: "q3", Type: MultipleChoice, Text: "Will you return?", Options: []string{"Yes", "No"}, Order: 2},
		},
	}
}

func responseAt(id string, at time.Time, answers ...Answer) Response {
	return Response{ID: id, SurveyID: "srv-1", SubmittedAt: at, Answers: answers}
}

func TestDistributions(t *testing.T) {
	now := time.Now().UTC()
	responses := []Response{
		responseAt("r1", now, Answer{QuestionID: "q2", Answer: "Yes"}),
		responseAt("r2", now.Add(time.Minute), Answer{QuestionID: "q2", Answer: "Yes"}),
		responseAt("r3", now.Add(2*time.Minute), Answer{QuestionID: "q2", Answer: "No"}),
	}

	stats := Distributions(reportSurvey(), responses)
	require.Len(t, stats, 2, "one entry per multiple-choice question")

	q2 := stats[0]
	assert.Equal(t, "q2", q2.QuestionID)
	assert.Equal(t, "Would you recommend us?", q2.Text)
	assert.Equal(t, 3, q2.Answered)
	require.Len(t, q2.Options, 2)
	assert.Equal(t, OptionCount{Option: "Yes", Count: 2, Percentage: 67}, q2.Options[0])
	assert.Equal(t, OptionCount{Option: "No", Count: 1, Percentage: 33}, q2.Options[1])
	// independent rounding: 67+33 happens to be 100 here, but that is
	// not corrected for in general
}

func TestDistributions_NobodyAnswered(t *testing.T) {
	now := time.Now().UTC()
	responses := []Response{
		responseAt("r1", now, Answer{QuestionID: "q1", Answer: "Ada"}),
	}

	stats := Distributions(reportSurvey(), responses)
	require.Len(t, stats, 2)

	q3 := stats[1]
	assert.Equal(t, "q3", q3.QuestionID)
	assert.Equal(t, 0, q3.Answered, "zero denominator is reported, not divided by")
	require.Len(t, q3.Options, 2)
	for _, opt := range q3.Options {
		assert.Equal(t, 0, opt.Count)
		assert.Equal(t, 0, opt.Percentage)
	}
}

func TestDistributions_NoResponsesAtAll(t *testing.T) {
	stats := Distributions(reportSurvey(), nil)
	require.Len(t, stats, 2)
	assert.Equal(t, 0, stats[0].Answered)
}

func TestDistributions_CountsLiteralAnswerValues(t *testing.T) {
	// an answer recorded before its option was reworded still shows up
	// under its literal value
	now := time.Now().UTC()
	responses := []Response{
		responseAt("r1", now, Answer{QuestionID: "q2", Answer: "Yes"}),
		responseAt("r2", now, Answer{QuestionID: "q2", Answer: "Maybe"}),
	}

	stats := Distributions(reportSurvey(), responses)
	q2 := stats[0]
	assert.Equal(t, 2, q2.Answered)
	require.Len(t, q2.Options, 3)
	assert.Equal(t, OptionCount{Option: "Maybe", Count: 1, Percentage: 50}, q2.Options[2])
}

func TestDistributions_IgnoresWhitespaceOnlyAnswers(t *testing.T) {
	// a blank answer that slipped into the store neither inflates the
	// denominator nor becomes a phantom option
	now := time.Now().UTC()
	responses := []Response{
		responseAt("r1", now, Answer{QuestionID: "q2", Answer: "Yes"}),
		responseAt("r2", now, Answer{QuestionID: "q2", Answer: "   "}),
	}

	stats := Distributions(reportSurvey(), responses)
	q2 := stats[0]
	assert.Equal(t, 1, q2.Answered)
	require.Len(t, q2.Options, 2)
	assert.Equal(t, OptionCount{Option: "Yes", Count: 1, Percentage: 100}, q2.Options[0])
}

func TestDistributions_Idempotent(t *testing.T) {
	now := time.Now().UTC()
	responses := []Response{
		responseAt("r1", now, Answer{QuestionID: "q2", Answer: "Yes"}),
		responseAt("r2", now.Add(time.Minute), Answer{QuestionID: "q2", Answer: "No"}),
	}

	survey := reportSurvey()
	first := Distributions(survey, responses)
	second := Distributions(survey, responses)
	assert.Equal(t, first, second)
}

func TestSubmissions_NumberingIsStable(t *testing.T) {
	now := time.Now().UTC()
	a := responseAt("a", now, Answer{QuestionID: "q1", Answer: "first"})
	b := responseAt("b", now.Add(time.Minute), Answer{QuestionID: "q1", Answer: "second"})
	c := responseAt("c", now.Add(2*time.Minute), Answer{QuestionID: "q1", Answer: "third"})

	listed := Submissions(reportSurvey(), []Response{a, b, c})
	require.Len(t, listed, 3)

	// newest first, numbered from the oldest up
	assert.Equal(t, "c", listed[0].ID)
	assert.Equal(t, 3, listed[0].Number)
	assert.Equal(t, "b", listed[1].ID)
	assert.Equal(t, 2, listed[1].Number)
	assert.Equal(t, "a", listed[2].ID)
	assert.Equal(t, 1, listed[2].Number)
}

func TestSubmissions_SortsBySubmissionTimeNotInputOrder(t *testing.T) {
	now := time.Now().UTC()
	a := responseAt("a", now)
	b := responseAt("b", now.Add(time.Minute))

	listed := Submissions(reportSurvey(), []Response{b, a})
	require.Len(t, listed, 2)
	assert.Equal(t, "b", listed[0].ID)
	assert.Equal(t, 2, listed[0].Number)
	assert.Equal(t, "a", listed[1].ID)
	assert.Equal(t, 1, listed[1].Number)
}

func TestSubmissions_JoinsQuestionText(t *testing.T) {
	now := time.Now().UTC()
	r := responseAt("r1", now,
		Answer{QuestionID: "q1", Answer: "Ada"},
		Answer{QuestionID: "q2", Answer: "Yes"},
	)

	listed := Submissions(reportSurvey(), []Response{r})
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Answers, 2)
	assert.Equal(t, "Your name?", listed[0].Answers[0].Question)
	assert.Equal(t, "Would you recommend us?", listed[0].Answers[1].Question)
	assert.False(t, listed[0].Answers[0].Orphaned)
}

func TestSubmissions_OrphanedAnswerIsKept(t *testing.T) {
	now := time.Now().UTC()
	r := responseAt("r1", now,
		Answer{QuestionID: "q-deleted", Answer: "still here"},
	)

	listed := Submissions(reportSurvey(), []Response{r})
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Answers, 1)

	orphan := listed[0].Answers[0]
	assert.True(t, orphan.Orphaned)
	assert.Empty(t, orphan.Question)
	assert.Equal(t, "still here", orphan.Answer)
}

func TestSubmissions_Empty(t *testing.T) {
	listed := Submissions(reportSurvey(), nil)
	assert.Empty(t, listed)
}
