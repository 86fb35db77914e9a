package main

import (
	"errors"
	"net/http"

	validatorutils "movielib/proj/internal/lib/validator"
	"movielib/proj/internal/services/credits"
)

func (app *Application) getMovieCast(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	cast, err := app.services.Credits.CastForMovie(r.Context(), movieID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"cast": cast}, "")
}

func (app *Application) getActorMovies(w http.ResponseWriter, r *http.Request) {
	personID, ok := app.extractIDParam(w, r, "personId")
	if !ok {
		return
	}
	movieList, err := app.services.Credits.MoviesForActor(r.Context(), personID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": movieList}, "")
}

type castMemberInput struct {
	MovieID  int64  `json:"movie_id" validate:"required,gt=0" errorMsg:"Movie ID is required"`
	PersonID int64  `json:"person_id" validate:"required,gt=0" errorMsg:"Person ID is required"`
	CastName string `json:"cast_name" validate:"required,notblank" errorMsg:"Cast name is required"`
}

func (app *Application) addCastMember(w http.ResponseWriter, r *http.Request) {
	var input castMemberInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	if err := app.services.Credits.AddCastMember(r.Context(), input.MovieID, input.PersonID, input.CastName); err != nil {
		app.creditError(w, r, err)
		return
	}
	app.Http.Created(w, r, nil, "Cast member added successfully!")
}

func (app *Application) updateCastMember(w http.ResponseWriter, r *http.Request) {
	var input castMemberInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	if err := app.services.Credits.UpdateCastName(r.Context(), input.MovieID, input.PersonID, input.CastName); err != nil {
		app.creditError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Cast member updated successfully!")
}

type creditLinkInput struct {
	MovieID  int64 `json:"movie_id" validate:"required,gt=0" errorMsg:"Movie ID is required"`
	PersonID int64 `json:"person_id" validate:"required,gt=0" errorMsg:"Person ID is required"`
}

func (app *Application) removeCastMember(w http.ResponseWriter, r *http.Request) {
	var input creditLinkInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	if err := app.services.Credits.RemoveCastMember(r.Context(), input.MovieID, input.PersonID); err != nil {
		app.creditError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Cast member removed from movie successfully!")
}

func (app *Application) getMovieDirectors(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	directors, err := app.services.Credits.DirectorsForMovie(r.Context(), movieID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"directors": directors}, "")
}

func (app *Application) getDirectorMovies(w http.ResponseWriter, r *http.Request) {
	personID, ok := app.extractIDParam(w, r, "personId")
	if !ok {
		return
	}
	movieList, err := app.services.Credits.MoviesForDirector(r.Context(), personID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": movieList}, "")
}

func (app *Application) addDirector(w http.ResponseWriter, r *http.Request) {
	var input creditLinkInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	if err := app.services.Credits.AddDirector(r.Context(), input.MovieID, input.PersonID); err != nil {
		app.creditError(w, r, err)
		return
	}
	app.Http.Created(w, r, nil, "Director added to movie successfully!")
}

func (app *Application) removeDirector(w http.ResponseWriter, r *http.Request) {
	var input creditLinkInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	if err := app.services.Credits.RemoveDirector(r.Context(), input.MovieID, input.PersonID); err != nil {
		app.creditError(w, r, err)
		return
	}
	app.Http.Ok(w, r, nil, "Director removed from movie successfully!")
}

func (app *Application) creditError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, credits.ErrEndpointNotFound):
		app.Http.NotFound(w, r, "Movie or person not found.")
	case errors.Is(err, credits.ErrCreditNotFound):
		app.Http.NotFound(w, r, "Credit not found for this movie.")
	case errors.Is(err, credits.ErrCreditAlreadyExists):
		app.Http.Conflict(w, r, "Credit already exists for this movie.")
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
