package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"github.com/formlite/formlite/app"
	"github.com/formlite/formlite/httpx"
	"github.com/formlite/formlite/log"
	"github.com/formlite/formlite/model"
)

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey := model.Survey{}
		err := render.DecodeJSON(r.Body, &survey)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = validateCreatePayload(survey)
		if err != nil {
			httpx.LogValidationError(w, "create_survey.validate", model.ErrorKind(err), err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		surveyId := uuid.Must(uuid.NewV4()).String()
		uniqueUrl := uuid.Must(uuid.NewV4()).String()
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO survey (id, unique_url, title, description, is_active, created_at)
			VALUES (?, ?, ?, ?, TRUE, ?)`,
			surveyId,
			uniqueUrl,
			survey.Title,
			survey.Description,
			time.Now().UTC(),
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO question (id, survey_id, type, text, required, options, ord)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey.questions.prepare", err)
			return
		}
		defer stmt.Close()

		// the stored order is always dense and 0-based, whatever the client sent
		for i, q := range survey.QuestionsInOrder() {
			var optionsJson []byte
			if q.Type == model.MultipleChoice {
				optionsJson, err = json.Marshal(q.Options)
				if err != nil {
					httpx.LogInternalError(w, "db.insert_survey.questions.encode_options", err)
					return
				}
			}
			questionId := uuid.Must(uuid.NewV4()).String()
			_, err := stmt.ExecContext(r.Context(), questionId, surveyId, q.Type, q.Text, q.Required, string(optionsJson), i)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_survey.questions.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":        surveyId,
			"uniqueUrl": uniqueUrl,
			"shareUrl":  app.ShareURL(uniqueUrl),
		})
	}
}

// validateCreatePayload applies the save-time rules to a payload coming from
// an arbitrary client, which may not have run the draft builder at all.
func validateCreatePayload(survey model.Survey) error {
	if strings.TrimSpace(survey.Title) == "" {
		return model.ErrMissingTitle{}
	}
	if len(survey.Questions) == 0 {
		return model.ErrNoQuestions{}
	}
	for i, q := range survey.Questions {
		if err := model.ValidateQuestion(q, i); err != nil {
			return err
		}
	}
	return nil
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT s.id, s.unique_url, s.title, s.description, s.is_active, COUNT(r.id)
			FROM survey s
			LEFT OUTER JOIN response r ON (s.id = r.survey_id)
			GROUP BY s.id, s.unique_url, s.title, s.description, s.is_active
			ORDER BY s.created_at DESC`)
		if err != nil {
			httpx.LogInternalError(w, "db.get_surveys", err)
			return
		}
		defer rows.Close()

		type listedSurvey struct {
			model.Survey
			ResponseCount int    `json:"responseCount"`
			ShareURL      string `json:"shareUrl"`
		}

		surveys := []listedSurvey{}
		for rows.Next() {
			s := listedSurvey{}
			err = rows.Scan(&s.ID, &s.UniqueURL, &s.Title, &s.Description, &s.IsActive, &s.ResponseCount)
			if err != nil {
				httpx.LogInternalError(w, "db.get_surveys.scan", err)
				return
			}
			s.ShareURL = app.ShareURL(s.UniqueURL)

			surveys = append(surveys, s)
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := fetchSurveyByID(r.Context(), app.DB, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func SetSurveyActive(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		var body struct {
			IsActive bool `json:"isActive"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		res, err := app.ExecContext(r.Context(), `
			UPDATE survey SET is_active = ? WHERE id = ?`,
			body.IsActive,
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey.active", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_survey.active.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "update_survey.active", surveyId)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		// questions and responses go with the survey (FK cascade)
		res, err := app.ExecContext(r.Context(), `
			DELETE FROM survey WHERE id = ?`,
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_survey", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_survey.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, "delete_survey", surveyId)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetSurveyReport(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := fetchSurveyByID(r.Context(), app.DB, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_report", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_report.survey", err)
			return
		}

		responses, err := fetchResponses(r.Context(), app.DB, surveyId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_report.responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"stats":       model.Distributions(survey, responses),
			"submissions": model.Submissions(survey, responses),
		})
	}
}
