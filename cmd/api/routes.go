package main

import (
	"net/http"

	"movielib/proj/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)

	moderatorOnly := app.requireRole(models.RoleModerator, models.RoleAdmin)
	adminOnly := app.requireRole(models.RoleAdmin)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)

		r.Post("/register", app.register)
		r.With(adminOnly).Post("/register/admin", app.registerAdmin)
		r.Post("/login", app.login)
		r.With(app.requireAuthenticatedUser).Post("/logout", app.logout)

		r.Route("/user", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/profile", app.getProfile)
			r.Put("/profile", app.updateProfile)
			r.Delete("/profile", app.deleteProfile)
			r.Get("/profile/ratings", app.getProfileRatings)
			r.With(adminOnly).Get("/all", app.listUsers)
			r.With(adminOnly).Delete("/profile/{username}", app.deleteUserByUsername)
		})

		r.Route("/movie", func(r chi.Router) {
			r.Get("/", app.getMovies)
			r.Get("/{id}", app.getMovie)
			r.Get("/title/{title}", app.getMovieByTitle)
			r.With(moderatorOnly).Post("/", app.createMovie)
			r.With(moderatorOnly).Put("/{id}", app.updateMovie)
			r.With(moderatorOnly).Delete("/{id}", app.deleteMovie)
		})

		r.Route("/person", func(r chi.Router) {
			r.Get("/", app.getPeople)
			r.Get("/{id}", app.getPerson)
			r.With(moderatorOnly).Post("/", app.createPerson)
			r.With(moderatorOnly).Put("/{id}", app.updatePerson)
			r.With(moderatorOnly).Delete("/{id}", app.deletePerson)
		})

		r.Route("/genre", func(r chi.Router) {
			r.Get("/", app.getGenres)
			r.Get("/movie/{movieId}", app.getMovieGenres)
			r.Get("/{name}/movies", app.getMoviesByGenre)
			r.With(moderatorOnly).Post("/", app.createGenre)
			r.With(moderatorOnly).Put("/{id}", app.renameGenre)
			r.With(moderatorOnly).Post("/movie", app.addGenreToMovie)
			r.With(moderatorOnly).Delete("/movie", app.removeGenreFromMovie)
		})

		r.Route("/cast", func(r chi.Router) {
			r.Get("/movie/{movieId}", app.getMovieCast)
			r.Get("/person/{personId}/movies", app.getActorMovies)
			r.With(moderatorOnly).Post("/", app.addCastMember)
			r.With(moderatorOnly).Put("/", app.updateCastMember)
			r.With(moderatorOnly).Delete("/", app.removeCastMember)
		})

		r.Route("/director", func(r chi.Router) {
			r.Get("/movie/{movieId}", app.getMovieDirectors)
			r.Get("/person/{personId}/movies", app.getDirectorMovies)
			r.With(moderatorOnly).Post("/", app.addDirector)
			r.With(moderatorOnly).Delete("/", app.removeDirector)
		})

		r.Route("/score", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Post("/{movieId}", app.submitScore)
			r.Delete("/{movieId}", app.deleteScore)
		})

		r.Route("/review", func(r chi.Router) {
			r.Get("/{movieId}", app.getMovieReviews)
			r.With(app.requireAuthenticatedUser).Post("/{movieId}", app.submitReview)
			r.With(app.requireAuthenticatedUser).Delete("/{movieId}", app.deleteReview)
		})
	})
	return router
}
