package main

import (
	"errors"
	"fmt"
	"net/http"

	validatorutils "movielib/proj/internal/lib/validator"
	"movielib/proj/internal/services/ratings"
)

type scoreInput struct {
	Score int32 `json:"score" validate:"required" errorMsg:"Score is required"`
}

func (app *Application) submitScore(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	var input scoreInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	user := userFromContext(r.Context())
	if err := app.services.Ratings.SubmitScore(r.Context(), user.ID, movieID, input.Score); err != nil {
		switch {
		case errors.Is(err, ratings.ErrInvalidScore):
			app.Http.BadRequest(w, r, fmt.Sprintf("Score must be a number between %d and %d.", ratings.MinScore, ratings.MaxScore))
		case errors.Is(err, ratings.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie not found.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, nil, "Score added/updated successfully!")
}

func (app *Application) deleteScore(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	user := userFromContext(r.Context())
	if err := app.services.Ratings.DeleteScore(r.Context(), user.ID, movieID); err != nil {
		switch {
		case errors.Is(err, ratings.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie not found.")
		case errors.Is(err, ratings.ErrScoreNotFound):
			app.Http.NotFound(w, r, "No score found to delete.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, nil, "Score deleted successfully!")
}

type reviewInput struct {
	Review string `json:"review" validate:"required,maxwords=200"`
}

func (app *Application) submitReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	var input reviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	user := userFromContext(r.Context())
	if err := app.services.Ratings.SubmitReview(r.Context(), user.ID, movieID, input.Review); err != nil {
		switch {
		case errors.Is(err, ratings.ErrEmptyReview):
			app.Http.BadRequest(w, r, "Review cannot be empty.")
		case errors.Is(err, ratings.ErrReviewTooLong):
			app.Http.BadRequest(w, r, fmt.Sprintf("Review must be less than or equal to %d words.", ratings.MaxReviewWords))
		case errors.Is(err, ratings.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie not found.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, nil, "Review added/updated successfully!")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	user := userFromContext(r.Context())
	if err := app.services.Ratings.DeleteReview(r.Context(), user.ID, movieID); err != nil {
		switch {
		case errors.Is(err, ratings.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie not found.")
		case errors.Is(err, ratings.ErrReviewNotFound):
			app.Http.NotFound(w, r, "No review found to delete.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, nil, "Review deleted successfully!")
}

func (app *Application) getMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	f := app.parseFilters(r)
	reviews, err := app.services.Ratings.ListMovieReviews(r.Context(), movieID, f)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviews, "pagination": paginationData(f)}, "")
}
