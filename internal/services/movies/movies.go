package movies

import (
	"context"
	"errors"
	"log/slog"

	"movielib/proj/internal/domain/filters"
	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
)

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
	GetByTitle(ctx context.Context, title string) (*models.Movie, error)
	List(ctx context.Context, filters filters.Filters) ([]models.Movie, error)
	Insert(ctx context.Context, title string, episodes int32, synopsis *string) (*models.Movie, error)
	Update(ctx context.Context, id int64, title string, episodes int32, synopsis *string) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
}

func New(log *slog.Logger, storage MoviesStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
	}
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) GetByTitle(ctx context.Context, title string) (*models.Movie, error) {
	const op = "movies.MovieService.GetByTitle"
	log := s.log.With("op", op, "title", title)
	movie, err := s.storage.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) List(ctx context.Context, filters filters.Filters) ([]models.Movie, error) {
	const op = "movies.MovieService.List"
	movies, err := s.storage.List(ctx, filters)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *MovieService) Create(ctx context.Context, title string, episodes int32, synopsis *string) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", title, "episodes", episodes)
	if episodes == 0 {
		episodes = 1
	}
	movie, err := s.storage.Insert(ctx, title, episodes, synopsis)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) Update(ctx context.Context, id int64, title string, episodes int32, synopsis *string) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id, "title", title)
	if episodes == 0 {
		episodes = 1
	}
	movie, err := s.storage.Update(ctx, id, title, episodes, synopsis)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id int64) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
