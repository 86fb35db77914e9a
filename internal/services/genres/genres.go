package genres

import (
	"context"
	"errors"
	"log/slog"

	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
)

type GenresStorage interface {
	List(ctx context.Context) ([]models.Genre, error)
	Insert(ctx context.Context, name string) (*models.Genre, error)
	Rename(ctx context.Context, id int64, name string) (*models.Genre, error)
	ForMovie(ctx context.Context, movieID int64) ([]models.Genre, error)
	MoviesFor(ctx context.Context, name string) ([]models.Movie, error)
	AddToMovie(ctx context.Context, movieID, genreID int64) error
	RemoveFromMovie(ctx context.Context, movieID, genreID int64) error
}

type GenreService struct {
	log     *slog.Logger
	storage GenresStorage
}

func New(log *slog.Logger, storage GenresStorage) *GenreService {
	return &GenreService{
		log:     log,
		storage: storage,
	}
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	const op = "genres.GenreService.List"
	genres, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return genres, nil
}

func (s *GenreService) Create(ctx context.Context, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Create"
	log := s.log.With("op", op, "name", name)
	genre, err := s.storage.Insert(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("genre already exists")
			return nil, ErrGenreAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Rename(ctx context.Context, id int64, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Rename"
	log := s.log.With("op", op, "id", id, "name", name)
	genre, err := s.storage.Rename(ctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("genre name taken")
			return nil, ErrGenreAlreadyExists
		case errors.Is(err, storage.ErrNotFound):
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) ForMovie(ctx context.Context, movieID int64) ([]models.Genre, error) {
	const op = "genres.GenreService.ForMovie"
	genres, err := s.storage.ForMovie(ctx, movieID)
	if err != nil {
		s.log.With("op", op, "movie_id", movieID).Error(err.Error())
		return nil, err
	}
	return genres, nil
}

func (s *GenreService) MoviesFor(ctx context.Context, name string) ([]models.Movie, error) {
	const op = "genres.GenreService.MoviesFor"
	movies, err := s.storage.MoviesFor(ctx, name)
	if err != nil {
		s.log.With("op", op, "name", name).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *GenreService) AddToMovie(ctx context.Context, movieID, genreID int64) error {
	const op = "genres.GenreService.AddToMovie"
	log := s.log.With("op", op, "movie_id", movieID, "genre_id", genreID)
	if err := s.storage.AddToMovie(ctx, movieID, genreID); err != nil {
		switch {
		case errors.Is(err, storage.ErrReferenceNotFound):
			log.Info("movie or genre not found")
			return ErrMovieNotFound
		case errors.Is(err, storage.ErrConflict):
			log.Info("link already exists")
			return ErrLinkAlreadyExists
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *GenreService) RemoveFromMovie(ctx context.Context, movieID, genreID int64) error {
	const op = "genres.GenreService.RemoveFromMovie"
	log := s.log.With("op", op, "movie_id", movieID, "genre_id", genreID)
	if err := s.storage.RemoveFromMovie(ctx, movieID, genreID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("link not found")
			return ErrLinkNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
