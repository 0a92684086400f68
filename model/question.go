package model

import "strings"

// ValidateQuestion checks a single question for persistence. Rules run in
// order and the first failure wins. The index is only used to report which
// question failed.
func ValidateQuestion(q Question, index int) error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestionText{Index: index}
	}

	switch q.Type {
	case ShortAnswer, LongAnswer, MultipleChoice:
	default:
		return ErrUnknownQuestionType{Index: index, Type: q.Type}
	}

	if q.Type == MultipleChoice {
		if len(q.Options) == 0 {
			return ErrInvalidOptions{Index: index, Reason: "at least one option is required"}
		}
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return ErrInvalidOptions{Index: index, Reason: "options must not be empty"}
			}
			if seen[opt] {
				return ErrInvalidOptions{Index: index, Reason: "duplicate option " + opt}
			}
			seen[opt] = true
		}
		return nil
	}

	// A text question must never carry option data into persistence.
	if len(q.Options) > 0 {
		return ErrUnexpectedOptions{Index: index, Type: q.Type}
	}
	return nil
}
