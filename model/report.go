package model

import (
	"math"
	"sort"
	"strings"
	"time"
)

// OptionCount is the tally for one literal answer value of a choice question.
type OptionCount struct {
	Option     string `json:"option"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// QuestionStats is the distribution for one multiple-choice question.
// Answered is the denominator; 0 answered with 0% everywhere is distinct
// from a question that was answered but where an option got no votes.
type QuestionStats struct {
	QuestionID string        `json:"questionId"`
	Text       string        `json:"text"`
	Answered   int           `json:"answered"`
	Options    []OptionCount `json:"options"`
}

// Submission is one response prepared for review, with answers joined back
// to question text.
type Submission struct {
	ID          string             `json:"id"`
	Number      int                `json:"number"`
	SubmittedAt time.Time          `json:"submittedAt"`
	Answers     []SubmissionAnswer `json:"answers"`
}

// SubmissionAnswer keeps answers whose question was deleted after the
// response was recorded: Orphaned is set and Question is empty, but the
// answer itself is never dropped.
type SubmissionAnswer struct {
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Orphaned   bool   `json:"orphaned,omitempty"`
}

// Distributions computes per-option frequency and percentage for every
// multiple-choice question of the survey. Counts are keyed by the literal
// option string. Percentages are rounded independently per option, so they
// need not sum to exactly 100; no remainder correction is applied.
func Distributions(survey Survey, responses []Response) []QuestionStats {
	var stats []QuestionStats
	for _, q := range survey.QuestionsInOrder() {
		if q.Type != MultipleChoice {
			continue
		}

		counts := make(map[string]int, len(q.Options))
		order := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			counts[opt] = 0
			order = append(order, opt)
		}

		answered := 0
		for _, r := range responses {
			// stored answers are trusted to be trimmed, but the
			// aggregator takes arbitrary response collections
			value := strings.TrimSpace(answerFor(r.Answers, q.ID))
			if value == "" {
				continue
			}
			answered++
			if _, known := counts[value]; !known {
				// answer recorded before the option was reworded;
				// still counted under its literal value
				order = append(order, value)
			}
			counts[value]++
		}

		options := make([]OptionCount, len(order))
		for i, opt := range order {
			options[i] = OptionCount{
				Option:     opt,
				Count:      counts[opt],
				Percentage: percentage(counts[opt], answered),
			}
		}

		stats = append(stats, QuestionStats{
			QuestionID: q.ID,
			Text:       q.Text,
			Answered:   answered,
			Options:    options,
		})
	}
	return stats
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// Submissions lists all responses newest first. Numbers count up from the
// oldest submission, so #1 stays #1 no matter how many responses arrive
// later.
func Submissions(survey Survey, responses []Response) []Submission {
	byTime := make([]Response, len(responses))
	copy(byTime, responses)
	sort.SliceStable(byTime, func(i, j int) bool {
		return byTime[i].SubmittedAt.Before(byTime[j].SubmittedAt)
	})

	out := make([]Submission, 0, len(byTime))
	for i := len(byTime) - 1; i >= 0; i-- {
		r := byTime[i]
		answers := make([]SubmissionAnswer, len(r.Answers))
		for j, a := range r.Answers {
			sa := SubmissionAnswer{QuestionID: a.QuestionID, Answer: a.Answer}
			if q, ok := survey.QuestionByID(a.QuestionID); ok {
				sa.Question = q.Text
			} else {
				sa.Orphaned = true
			}
			answers[j] = sa
		}
		out = append(out, Submission{
			ID:          r.ID,
			Number:      i + 1,
			SubmittedAt: r.SubmittedAt,
			Answers:     answers,
		})
	}
	return out
}
