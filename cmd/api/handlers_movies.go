package main

import (
	"errors"
	"net/http"

	validatorutils "movielib/proj/internal/lib/validator"
	"movielib/proj/internal/services/movies"

	"github.com/go-chi/chi/v5"
)

func (app *Application) getMovies(w http.ResponseWriter, r *http.Request) {
	f := app.parseFilters(r)
	movieList, err := app.services.Movies.List(r.Context(), f)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": movieList, "pagination": paginationData(f)}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) getMovieByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if title == "" {
		app.Http.BadRequest(w, r, "Title is required.")
		return
	}
	movie, err := app.services.Movies.GetByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

type movieInput struct {
	Title    string  `json:"title" validate:"required,notblank" errorMsg:"Title is required"`
	Episodes int32   `json:"episodes" validate:"omitempty,gt=0" errorMsg:"Episodes must be a positive integer"`
	Synopsis *string `json:"synopsis" validate:"omitempty"`
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var input movieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	movie, err := app.services.Movies.Create(r.Context(), input.Title, input.Episodes, input.Synopsis)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie}, "Movie added successfully!")
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input movieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	movie, err := app.services.Movies.Update(r.Context(), id, input.Title, input.Episodes, input.Synopsis)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "Movie updated successfully!")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.services.Movies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Movie deleted successfully!")
}
