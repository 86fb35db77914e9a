package genres

import "errors"

var (
	ErrGenreNotFound      = errors.New("genre not found")
	ErrGenreAlreadyExists = errors.New("genre already exists")
	ErrMovieNotFound      = errors.New("movie or genre not found")
	ErrLinkNotFound       = errors.New("genre is not linked to this movie")
	ErrLinkAlreadyExists  = errors.New("genre is already linked to this movie")
)
