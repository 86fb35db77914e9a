package main

import (
	"errors"
	"net/http"

	"movielib/proj/internal/domain/models"
	validatorutils "movielib/proj/internal/lib/validator"
	"movielib/proj/internal/services/people"
)

func (app *Application) getPeople(w http.ResponseWriter, r *http.Request) {
	f := app.parseFilters(r)
	peopleList, err := app.services.People.List(r.Context(), f)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"people": peopleList, "pagination": paginationData(f)}, "")
}

func (app *Application) getPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	person, err := app.services.People.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, people.ErrPersonNotFound) {
			app.Http.NotFound(w, r, "Person not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"person": person}, "")
}

type personInput struct {
	FirstName    string `json:"first_name" validate:"required,notblank"`
	LastName     string `json:"last_name" validate:"required,notblank"`
	Gender       string `json:"gender" validate:"required,notblank"`
	BirthYear    int32  `json:"birth_year" validate:"required,gt=0"`
	BirthCountry string `json:"birth_country" validate:"required,notblank"`
}

func (app *Application) createPerson(w http.ResponseWriter, r *http.Request) {
	var input personInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	person, err := app.services.People.Create(r.Context(), &models.Person{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		BirthYear:    input.BirthYear,
		BirthCountry: input.BirthCountry,
	})
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"person": person}, "Person added successfully!")
}

func (app *Application) updatePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input personInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	person, err := app.services.People.Update(r.Context(), &models.Person{
		ID:           id,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		BirthYear:    input.BirthYear,
		BirthCountry: input.BirthCountry,
	})
	if err != nil {
		if errors.Is(err, people.ErrPersonNotFound) {
			app.Http.NotFound(w, r, "Person not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"person": person}, "Person updated successfully!")
}

func (app *Application) deletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.services.People.Delete(r.Context(), id); err != nil {
		if errors.Is(err, people.ErrPersonNotFound) {
			app.Http.NotFound(w, r, "Person not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Person deleted successfully!")
}
