package routes

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/formlite/formlite/model"
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// fetchSurveyByID loads a definition with its questions. Returns
// sql.ErrNoRows when the survey does not exist.
func fetchSurveyByID(ctx context.Context, db querier, id string) (model.Survey, error) {
	return fetchSurvey(ctx, db, `
		SELECT
			s.id, s.unique_url, s.title, s.description, s.is_active,
			q.id, q.type, q.text, q.required, q.options, q.ord
		FROM survey s
		LEFT OUTER JOIN question q ON (s.id = q.survey_id)
		WHERE s.id = ?
		ORDER BY q.ord`,
		id,
	)
}

func fetchSurveyByURL(ctx context.Context, db querier, url string) (model.Survey, error) {
	return fetchSurvey(ctx, db, `
		SELECT
			s.id, s.unique_url, s.title, s.description, s.is_active,
			q.id, q.type, q.text, q.required, q.options, q.ord
		FROM survey s
		LEFT OUTER JOIN question q ON (s.id = q.survey_id)
		WHERE s.unique_url = ?
		ORDER BY q.ord`,
		url,
	)
}

func fetchSurvey(ctx context.Context, db querier, query string, arg any) (survey model.Survey, err error) {
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return
	}
	defer rows.Close()

	if !rows.Next() {
		err = sql.ErrNoRows
		return
	}

	for {
		var questionId, qtype, text, opts sql.NullString
		var required sql.NullBool
		var ord sql.NullInt64
		err = rows.Scan(
			&survey.ID, &survey.UniqueURL, &survey.Title, &survey.Description, &survey.IsActive,
			&questionId, &qtype, &text, &required, &opts, &ord,
		)
		if err != nil {
			return
		}

		// left join: a survey with no questions yields one all-NULL question row
		if questionId.Valid {
			q := model.Question{
				ID:       questionId.String,
				Type:     model.QuestionType(qtype.String),
				Text:     text.String,
				Required: required.Bool,
				Order:    int(ord.Int64),
			}
			if opts.String != "" {
				err = json.Unmarshal([]byte(opts.String), &q.Options)
				if err != nil {
					return
				}
			}
			survey.Questions = append(survey.Questions, q)
		}

		if !rows.Next() {
			break
		}
	}
	// a cursor error mid-iteration must not pass for a shorter survey
	err = rows.Err()
	return
}

// fetchResponses loads every response of a survey with its answers, oldest
// first by submission time.
func fetchResponses(ctx context.Context, db querier, surveyId string) ([]model.Response, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			r.id, r.survey_id, r.submitted_at,
			a.question_id, a.value
		FROM response r
		LEFT OUTER JOIN answer a ON (r.id = a.response_id)
		WHERE r.survey_id = ?
		ORDER BY r.submitted_at, r.id`,
		surveyId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		r := model.Response{}
		var questionId, value sql.NullString
		err = rows.Scan(&r.ID, &r.SurveyID, &r.SubmittedAt, &questionId, &value)
		if err != nil {
			return nil, err
		}

		lastIdx := len(responses) - 1
		if lastIdx < 0 || responses[lastIdx].ID != r.ID {
			responses = append(responses, r)
			lastIdx++
		}
		if questionId.Valid {
			responses[lastIdx].Answers = append(responses[lastIdx].Answers, model.Answer{
				QuestionID: questionId.String,
				Answer:     value.String,
			})
		}
	}
	return responses, rows.Err()
}
