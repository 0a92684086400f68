package model

import "strings"

// Draft is an unpersisted survey held by an authoring session. It is a plain
// value: every operation returns a new Draft, so UI callbacks can never alias
// each other through shared state.
type Draft struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []DraftQuestion `json:"questions"`
}

// DraftQuestion deliberately has no durable id field. The LocalID only means
// something inside one authoring session and can never leak into persistence,
// where the store assigns Question.ID.
type DraftQuestion struct {
	LocalID  int64        `json:"id"`
	Type     QuestionType `json:"type"`
	Text     string       `json:"text"`
	Required bool         `json:"required"`
	Options  []string     `json:"options"`
	Order    int          `json:"order"`
}

// AddQuestion appends a blank short-answer question with the next free local
// id and order = current length. Existing questions are not renumbered.
func (d Draft) AddQuestion() Draft {
	var next int64 = 1
	for _, q := range d.Questions {
		if q.LocalID >= next {
			next = q.LocalID + 1
		}
	}

	questions := make([]DraftQuestion, len(d.Questions), len(d.Questions)+1)
	copy(questions, d.Questions)
	d.Questions = append(questions, DraftQuestion{
		LocalID:  next,
		Type:     ShortAnswer,
		Text:     "",
		Required: false,
		Options:  nil,
		Order:    len(d.Questions),
	})
	return d
}

// UpdateQuestion replaces exactly the named field on the question with the
// given local id. Absent ids and unknown fields are no-ops. Other fields are
// not re-validated here; validation is deferred to save time.
func (d Draft) UpdateQuestion(id int64, field string, value any) Draft {
	questions := make([]DraftQuestion, len(d.Questions))
	copy(questions, d.Questions)

	for i, q := range questions {
		if q.LocalID != id {
			continue
		}
		switch field {
		case "type":
			if t, ok := asQuestionType(value); ok {
				q.Type = t
			}
		case "text":
			if s, ok := value.(string); ok {
				q.Text = s
			}
		case "required":
			if b, ok := value.(bool); ok {
				q.Required = b
			}
		case "options":
			if opts, ok := asOptions(value); ok {
				q.Options = opts
			}
		}
		questions[i] = q
		break
	}

	d.Questions = questions
	return d
}

// RemoveQuestion drops the question with the given local id. Remaining order
// values are left untouched: gaps are fine in a draft, since relative order
// still defines the sequence. Payload compacts them at save time.
func (d Draft) RemoveQuestion(id int64) Draft {
	questions := make([]DraftQuestion, 0, len(d.Questions))
	for _, q := range d.Questions {
		if q.LocalID != id {
			questions = append(questions, q)
		}
	}
	d.Questions = questions
	return d
}

// ValidateForSave checks the whole draft the way the store will see it:
// title present, at least one question, and every question valid in its
// persistable form. The first failure wins.
func (d Draft) ValidateForSave() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrMissingTitle{}
	}
	if len(d.Questions) == 0 {
		return ErrNoQuestions{}
	}
	for i, q := range d.Questions {
		if err := ValidateQuestion(q.persistable(i), i); err != nil {
			return err
		}
	}
	return nil
}

// Payload converts the draft into the questions to persist: local ids are
// stripped, order is re-derived contiguously from the current sequence, and
// options are dropped for non-choice questions even if stale UI state left
// them populated.
func (d Draft) Payload() Survey {
	questions := make([]Question, len(d.Questions))
	for i, q := range d.Questions {
		questions[i] = q.persistable(i)
	}
	return Survey{
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Questions:   questions,
	}
}

func (q DraftQuestion) persistable(position int) Question {
	p := Question{
		Type:     q.Type,
		Text:     q.Text,
		Required: q.Required,
		Order:    position,
	}
	if q.Type == MultipleChoice {
		p.Options = q.Options
	}
	return p
}

func asQuestionType(value any) (QuestionType, bool) {
	switch t := value.(type) {
	case QuestionType:
		return t, true
	case string:
		return QuestionType(t), true
	}
	return "", false
}

func asOptions(value any) ([]string, bool) {
	switch opts := value.(type) {
	case []string:
		return opts, true
	case []any:
		// options decoded from JSON arrive as []any
		out := make([]string, 0, len(opts))
		for _, o := range opts {
			s, ok := o.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
