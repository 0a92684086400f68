package model

import (
	"errors"
	"fmt"
)

// ErrValidation is the common sentinel behind every validation failure, so
// callers can match the whole family with errors.Is and still inspect the
// concrete kind with errors.As.
var ErrValidation = errors.New("validation failed")

type ErrEmptyQuestionText struct {
	Index int
}

func (e ErrEmptyQuestionText) Error() string {
	return fmt.Sprintf("question %d: text must not be empty", e.Index+1)
}

func (e ErrEmptyQuestionText) Unwrap() error { return ErrValidation }

type ErrUnknownQuestionType struct {
	Index int
	Type  QuestionType
}

func (e ErrUnknownQuestionType) Error() string {
	return fmt.Sprintf("question %d: unknown type %q", e.Index+1, string(e.Type))
}

func (e ErrUnknownQuestionType) Unwrap() error { return ErrValidation }

type ErrInvalidOptions struct {
	Index  int
	Reason string
}

func (e ErrInvalidOptions) Error() string {
	return fmt.Sprintf("question %d: invalid options: %s", e.Index+1, e.Reason)
}

func (e ErrInvalidOptions) Unwrap() error { return ErrValidation }

type ErrUnexpectedOptions struct {
	Index int
	Type  QuestionType
}

func (e ErrUnexpectedOptions) Error() string {
	return fmt.Sprintf("question %d: %s question must not carry options", e.Index+1, string(e.Type))
}

func (e ErrUnexpectedOptions) Unwrap() error { return ErrValidation }

type ErrMissingTitle struct{}

func (ErrMissingTitle) Error() string { return "survey title must not be empty" }

func (ErrMissingTitle) Unwrap() error { return ErrValidation }

type ErrNoQuestions struct{}

func (ErrNoQuestions) Error() string { return "survey must have at least one question" }

func (ErrNoQuestions) Unwrap() error { return ErrValidation }

type ErrSurveyInactive struct {
	SurveyID string
}

func (e ErrSurveyInactive) Error() string {
	return fmt.Sprintf("survey %s is not accepting responses", e.SurveyID)
}

func (e ErrSurveyInactive) Unwrap() error { return ErrValidation }

type ErrUnknownQuestion struct {
	QuestionID string
}

func (e ErrUnknownQuestion) Error() string {
	return fmt.Sprintf("answer references unknown question %s", e.QuestionID)
}

func (e ErrUnknownQuestion) Unwrap() error { return ErrValidation }

type ErrInvalidSelection struct {
	QuestionID string
	Answer     string
}

func (e ErrInvalidSelection) Error() string {
	return fmt.Sprintf("answer %q is not an option of question %s", e.Answer, e.QuestionID)
}

func (e ErrInvalidSelection) Unwrap() error { return ErrValidation }

type ErrMissingRequiredAnswer struct {
	QuestionID string
	Text       string
}

func (e ErrMissingRequiredAnswer) Error() string {
	return fmt.Sprintf("required question %q has no answer", e.Text)
}

func (e ErrMissingRequiredAnswer) Unwrap() error { return ErrValidation }

func (ErrEmptyQuestionText) Kind() string     { return "EmptyQuestionText" }
func (ErrUnknownQuestionType) Kind() string   { return "UnknownQuestionType" }
func (ErrInvalidOptions) Kind() string        { return "InvalidOptions" }
func (ErrUnexpectedOptions) Kind() string     { return "UnexpectedOptions" }
func (ErrMissingTitle) Kind() string          { return "MissingTitle" }
func (ErrNoQuestions) Kind() string           { return "NoQuestions" }
func (ErrSurveyInactive) Kind() string        { return "SurveyInactive" }
func (ErrUnknownQuestion) Kind() string       { return "UnknownQuestion" }
func (ErrInvalidSelection) Kind() string      { return "InvalidSelection" }
func (ErrMissingRequiredAnswer) Kind() string { return "MissingRequiredAnswer" }

// ErrorKind names the validation failure for transport payloads; empty for
// errors outside the taxonomy.
func ErrorKind(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
