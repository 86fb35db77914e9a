package main

import (
	"errors"
	"net/http"

	validatorutils "movielib/proj/internal/lib/validator"
	"movielib/proj/internal/services/users"

	"github.com/go-chi/chi/v5"
)

func (app *Application) getProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	profile, err := app.services.Users.GetProfile(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"user": profile}, "")
}

type updateProfileInput struct {
	NewUsername string `json:"new_username" validate:"required,notblank,notreserved" errorMsg:"Username must not be blank or a reserved name"`
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8" errorMsg:"Password must be at least 8 characters long"`
}

func (app *Application) updateProfile(w http.ResponseWriter, r *http.Request) {
	var input updateProfileInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	user := userFromContext(r.Context())
	err := app.services.Users.UpdateProfile(r.Context(), user.ID, input.NewUsername, input.Password, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			app.Http.NotFound(w, r, "User not found.")
		case errors.Is(err, users.ErrInvalidPassword):
			app.Http.Unauthorized(w, r, "Invalid password!")
		case errors.Is(err, users.ErrUsernameTaken):
			app.Http.Conflict(w, r, "Username already exists.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, nil, "Profile updated successfully.")
}

func (app *Application) deleteProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if err := app.services.Users.DeleteProfile(r.Context(), user.ID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "User profile deleted successfully.")
}

func (app *Application) getProfileRatings(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	f := app.parseFilters(r)
	ratings, err := app.services.Users.GetRatings(r.Context(), user.ID, f)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"ratings": ratings, "pagination": paginationData(f)}, "")
}

func (app *Application) listUsers(w http.ResponseWriter, r *http.Request) {
	f := app.parseFilters(r)
	accounts, err := app.services.Users.List(r.Context(), f)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"users": accounts, "pagination": paginationData(f)}, "")
}

func (app *Application) deleteUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		app.Http.BadRequest(w, r, "Username is required.")
		return
	}
	if err := app.services.Users.DeleteByUsername(r.Context(), username); err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			app.Http.NotFound(w, r, "User not found.")
		case errors.Is(err, users.ErrAdminProtected):
			app.Http.Forbidden(w, r, "Admin accounts cannot be deleted.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, nil, "User profile deleted successfully.")
}
