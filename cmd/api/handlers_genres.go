package main

import (
	"errors"
	"net/http"

	validatorutils "movielib/proj/internal/lib/validator"
	"movielib/proj/internal/services/genres"

	"github.com/go-chi/chi/v5"
)

func (app *Application) getGenres(w http.ResponseWriter, r *http.Request) {
	genreList, err := app.services.Genres.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": genreList}, "")
}

func (app *Application) getMovieGenres(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	genreList, err := app.services.Genres.ForMovie(r.Context(), movieID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": genreList}, "")
}

func (app *Application) getMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		app.Http.BadRequest(w, r, "Genre name is required.")
		return
	}
	movieList, err := app.services.Genres.MoviesFor(r.Context(), name)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": movieList}, "")
}

type genreInput struct {
	Name string `json:"name" validate:"required,notblank" errorMsg:"Genre name is required"`
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	var input genreInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	genre, err := app.services.Genres.Create(r.Context(), input.Name)
	if err != nil {
		if errors.Is(err, genres.ErrGenreAlreadyExists) {
			app.Http.Conflict(w, r, "Genre already exists.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"genre": genre}, "Genre added successfully!")
}

func (app *Application) renameGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input genreInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	genre, err := app.services.Genres.Rename(r.Context(), id, input.Name)
	if err != nil {
		switch {
		case errors.Is(err, genres.ErrGenreNotFound):
			app.Http.NotFound(w, r, "Genre not found.")
		case errors.Is(err, genres.ErrGenreAlreadyExists):
			app.Http.Conflict(w, r, "Genre already exists.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "Genre updated successfully!")
}

type genreLinkInput struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0" errorMsg:"Movie ID is required"`
	GenreID int64 `json:"genre_id" validate:"required,gt=0" errorMsg:"Genre ID is required"`
}

func (app *Application) addGenreToMovie(w http.ResponseWriter, r *http.Request) {
	var input genreLinkInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	if err := app.services.Genres.AddToMovie(r.Context(), input.MovieID, input.GenreID); err != nil {
		switch {
		case errors.Is(err, genres.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie or genre not found.")
		case errors.Is(err, genres.ErrLinkAlreadyExists):
			app.Http.Conflict(w, r, "Genre is already linked to this movie.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, nil, "Genre added to movie successfully!")
}

func (app *Application) removeGenreFromMovie(w http.ResponseWriter, r *http.Request) {
	var input genreLinkInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	if err := app.services.Genres.RemoveFromMovie(r.Context(), input.MovieID, input.GenreID); err != nil {
		if errors.Is(err, genres.ErrLinkNotFound) {
			app.Http.NotFound(w, r, "Genre not found for the specified movie.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Genre removed from movie successfully!")
}
