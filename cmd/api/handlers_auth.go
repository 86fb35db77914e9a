package main

import (
	"errors"
	"net/http"

	"movielib/proj/internal/domain/models"
	validatorutils "movielib/proj/internal/lib/validator"
	"movielib/proj/internal/services/auth"
)

type registerInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,notblank,notreserved" errorMsg:"Username must not be blank or a reserved name"`
	Password string `json:"password" validate:"required,min=8" errorMsg:"Password must be at least 8 characters long"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	user, err := app.services.Auth.Register(r.Context(), input.Email, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			app.Http.Conflict(w, r, "Email or username already exists.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "User registered successfully!")
}

type registerAdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,notblank,notreserved" errorMsg:"Username must not be blank or a reserved name"`
	Password string `json:"password" validate:"required,min=8" errorMsg:"Password must be at least 8 characters long"`
	Role     string `json:"role" validate:"required,oneof=admin moderator"`
}

func (app *Application) registerAdmin(w http.ResponseWriter, r *http.Request) {
	var input registerAdminInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	user, err := app.services.Auth.RegisterElevated(r.Context(), input.Email, input.Username, input.Password, models.Role(input.Role))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserAlreadyExists):
			app.Http.Conflict(w, r, "Email or username already exists.")
		case errors.Is(err, auth.ErrInvalidRole):
			app.Http.BadRequest(w, r, "Role must be admin or moderator.")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "User registered successfully!")
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validatorutils.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationError(w, r, errs)
		return
	}
	token, err := app.services.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, "Invalid email or password.")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"token": token}, "Login successful!")
}

func (app *Application) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := r.Context().Value(CtxKeyToken).(string)
	if token == "" {
		app.Http.Unauthorized(w, r, "No token provided.")
		return
	}
	if err := app.services.Auth.Logout(r.Context(), token); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Logged out successfully.")
}
