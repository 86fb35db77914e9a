package services

import (
	"log/slog"

	"movielib/proj/internal/config"
	"movielib/proj/internal/services/auth"
	"movielib/proj/internal/services/credits"
	"movielib/proj/internal/services/genres"
	"movielib/proj/internal/services/movies"
	"movielib/proj/internal/services/people"
	"movielib/proj/internal/services/ratings"
	"movielib/proj/internal/services/users"
	"movielib/proj/internal/storage/postgres"
	"movielib/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Users   *users.UserService
	Movies  *movies.MovieService
	People  *people.PersonService
	Genres  *genres.GenreService
	Credits *credits.CreditService
	Ratings *ratings.RatingService
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	storage *postgres.PostgresDB,
	revocations auth.RevocationStore,
	mailer auth.MailProvider,
	taskExecutor auth.TaskExecutor,
) *Services {
	m := models.New(storage)
	return &Services{
		Auth:    auth.New(log, m.Users, revocations, mailer, taskExecutor, cfg.AppSecret, cfg.TokenTTL),
		Users:   users.New(log, m.Users),
		Movies:  movies.New(log, m.Movies),
		People:  people.New(log, m.People),
		Genres:  genres.New(log, m.Genres),
		Credits: credits.New(log, m.Credits),
		Ratings: ratings.New(log, m.Ratings),
	}
}
