package main

import (
	"log/slog"

	"movielib/proj/internal/config"
	"movielib/proj/internal/lib/validator"
	"movielib/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	services  *services.Services
	validator *govalidator.Validate
	decoder   *schema.Decoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, services *services.Services) *Application {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notreserved", validator.ValidateNotReserved); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("notblank", validator.ValidateNotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("maxwords", validator.ValidateMaxWords); err != nil {
		panic(err)
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:       cfg,
		log:       log,
		services:  services,
		validator: v,
		decoder:   decoder,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
