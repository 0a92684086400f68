package model

import (
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// AssembleSubmission validates a respondent's raw answers against the survey
// definition and builds the Response to persist. It either returns a complete
// valid Response or no Response at all; there is no partial application and
// this is the only path that creates a Response.
func AssembleSubmission(survey Survey, answers []Answer) (Response, error) {
	if !survey.IsActive {
		return Response{}, ErrSurveyInactive{SurveyID: survey.ID}
	}

	for _, a := range answers {
		if _, ok := survey.QuestionByID(a.QuestionID); !ok {
			return Response{}, ErrUnknownQuestion{QuestionID: a.QuestionID}
		}
	}

	// Required questions are checked in display order so the first missing
	// one reported is deterministic.
	for _, q := range survey.QuestionsInOrder() {
		if !q.Required {
			continue
		}
		if strings.TrimSpace(answerFor(answers, q.ID)) == "" {
			return Response{}, ErrMissingRequiredAnswer{QuestionID: q.ID, Text: q.Text}
		}
	}

	// A choice answer must match one of its question's options exactly.
	// This check comes after the required sweep, so a submission that is
	// both incomplete and invalid reports the missing answer.
	for _, a := range answers {
		q, _ := survey.QuestionByID(a.QuestionID)
		if q.Type == MultipleChoice && strings.TrimSpace(a.Answer) != "" {
			if !containsOption(q.Options, a.Answer) {
				return Response{}, ErrInvalidSelection{QuestionID: a.QuestionID, Answer: a.Answer}
			}
		}
	}

	// Only questions the respondent actually answered make it into the
	// response; blanks for optional questions are not padded with empty pairs.
	kept := make([]Answer, 0, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a.Answer) != "" {
			kept = append(kept, a)
		}
	}

	return Response{
		ID:          uuid.Must(uuid.NewV4()).String(),
		SurveyID:    survey.ID,
		SubmittedAt: time.Now().UTC(),
		Answers:     kept,
	}, nil
}

func answerFor(answers []Answer, questionID string) string {
	for _, a := range answers {
		if a.QuestionID == questionID {
			return a.Answer
		}
	}
	return ""
}

func containsOption(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
