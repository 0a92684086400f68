package model

import (
	"sort"
	"time"
)

type QuestionType string

const (
	ShortAnswer    QuestionType = "short-answer"
	LongAnswer     QuestionType = "long-answer"
	MultipleChoice QuestionType = "multiple-choice"
)

// Survey is a persisted definition: id, uniqueUrl and question ids are
// assigned by the store, never by the draft builder.
type Survey struct {
	ID          string     `json:"id,omitempty"`
	UniqueURL   string     `json:"uniqueUrl,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID       string       `json:"questionId,omitempty"`
	Type     QuestionType `json:"type"`
	Text     string       `json:"text"`
	Required bool         `json:"required"`
	Options  []string     `json:"options,omitempty"`
	Order    int          `json:"order"`
}

type Response struct {
	ID          string    `json:"_id"`
	SurveyID    string    `json:"surveyId"`
	SubmittedAt time.Time `json:"submittedAt"`
	Answers     []Answer  `json:"answers"`
}

type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

func (s Survey) QuestionByID(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionsInOrder sorts by the order field, which is the sole source of truth
// for display sequence. Container order is not trusted.
func (s Survey) QuestionsInOrder() []Question {
	qs := make([]Question, len(s.Questions))
	copy(qs, s.Questions)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })
	return qs
}
