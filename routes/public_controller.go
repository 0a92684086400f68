package routes

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/formlite/formlite/app"
	"github.com/formlite/formlite/httpx"
	"github.com/formlite/formlite/log"
	"github.com/formlite/formlite/model"
)

// PublicGetSurvey resolves a survey by its unique url token. A survey that
// was closed by the operator looks exactly like a missing one to the public.
func PublicGetSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := chi.URLParam(r, "url")

		survey, err := fetchSurveyByURL(r.Context(), app.DB, url)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "public.get_survey", url)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.public.get_survey", err)
			return
		}
		if !survey.IsActive {
			httpx.LogNotFound(w, "public.get_survey.inactive", url)
			return
		}

		render.JSON(w, r, survey)
	}
}

func PublicSubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := chi.URLParam(r, "url")

		var body struct {
			Answers []model.Answer `json:"answers"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		survey, err := fetchSurveyByURL(r.Context(), app.DB, url)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "public.submit.get_survey", url)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.public.submit.get_survey", err)
			return
		}

		response, err := model.AssembleSubmission(survey, body.Answers)
		if errors.Is(err, model.ErrValidation) {
			httpx.LogValidationError(w, "public.submit.validate", model.ErrorKind(err), err)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "public.submit.assemble", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO response (id, survey_id, submitted_at)
			VALUES (?, ?, ?)`,
			response.ID,
			response.SurveyID,
			response.SubmittedAt,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO answer (response_id, question_id, value)
			VALUES (?, ?, ?)`)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response.answers.prepare", err)
			return
		}
		defer stmt.Close()

		for _, a := range response.Answers {
			_, err := stmt.ExecContext(r.Context(), response.ID, a.QuestionID, a.Answer)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_response.answers.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": response.ID,
		})
	}
}
