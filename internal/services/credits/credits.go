package credits

import (
	"context"
	"errors"
	"log/slog"

	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
)

type CreditsStorage interface {
	CastForMovie(ctx context.Context, movieID int64) ([]models.CastMember, error)
	MoviesForActor(ctx context.Context, personID int64) ([]models.MovieCredit, error)
	AddCastMember(ctx context.Context, movieID, personID int64, castName string) error
	UpdateCastName(ctx context.Context, movieID, personID int64, castName string) error
	RemoveCastMember(ctx context.Context, movieID, personID int64) error
	DirectorsForMovie(ctx context.Context, movieID int64) ([]models.Director, error)
	MoviesForDirector(ctx context.Context, personID int64) ([]models.MovieCredit, error)
	AddDirector(ctx context.Context, movieID, personID int64) error
	RemoveDirector(ctx context.Context, movieID, personID int64) error
}

// CreditService manages both credit kinds; cast rows carry a character
// name, director rows are a bare link.
type CreditService struct {
	log     *slog.Logger
	storage CreditsStorage
}

func New(log *slog.Logger, storage CreditsStorage) *CreditService {
	return &CreditService{
		log:     log,
		storage: storage,
	}
}

func (s *CreditService) translateErr(err error, log *slog.Logger) error {
	switch {
	case errors.Is(err, storage.ErrReferenceNotFound):
		log.Info("movie or person not found")
		return ErrEndpointNotFound
	case errors.Is(err, storage.ErrConflict):
		log.Info("credit already exists")
		return ErrCreditAlreadyExists
	case errors.Is(err, storage.ErrNotFound):
		log.Info("credit not found")
		return ErrCreditNotFound
	}
	log.Error(err.Error())
	return err
}

func (s *CreditService) CastForMovie(ctx context.Context, movieID int64) ([]models.CastMember, error) {
	const op = "credits.CreditService.CastForMovie"
	cast, err := s.storage.CastForMovie(ctx, movieID)
	if err != nil {
		s.log.With("op", op, "movie_id", movieID).Error(err.Error())
		return nil, err
	}
	return cast, nil
}

func (s *CreditService) MoviesForActor(ctx context.Context, personID int64) ([]models.MovieCredit, error) {
	const op = "credits.CreditService.MoviesForActor"
	movies, err := s.storage.MoviesForActor(ctx, personID)
	if err != nil {
		s.log.With("op", op, "person_id", personID).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *CreditService) AddCastMember(ctx context.Context, movieID, personID int64, castName string) error {
	const op = "credits.CreditService.AddCastMember"
	log := s.log.With("op", op, "movie_id", movieID, "person_id", personID)
	if err := s.storage.AddCastMember(ctx, movieID, personID, castName); err != nil {
		return s.translateErr(err, log)
	}
	return nil
}

func (s *CreditService) UpdateCastName(ctx context.Context, movieID, personID int64, castName string) error {
	const op = "credits.CreditService.UpdateCastName"
	log := s.log.With("op", op, "movie_id", movieID, "person_id", personID)
	if err := s.storage.UpdateCastName(ctx, movieID, personID, castName); err != nil {
		return s.translateErr(err, log)
	}
	return nil
}

func (s *CreditService) RemoveCastMember(ctx context.Context, movieID, personID int64) error {
	const op = "credits.CreditService.RemoveCastMember"
	log := s.log.With("op", op, "movie_id", movieID, "person_id", personID)
	if err := s.storage.RemoveCastMember(ctx, movieID, personID); err != nil {
		return s.translateErr(err, log)
	}
	return nil
}

func (s *CreditService) DirectorsForMovie(ctx context.Context, movieID int64) ([]models.Director, error) {
	const op = "credits.CreditService.DirectorsForMovie"
	directors, err := s.storage.DirectorsForMovie(ctx, movieID)
	if err != nil {
		s.log.With("op", op, "movie_id", movieID).Error(err.Error())
		return nil, err
	}
	return directors, nil
}

func (s *CreditService) MoviesForDirector(ctx context.Context, personID int64) ([]models.MovieCredit, error) {
	const op = "credits.CreditService.MoviesForDirector"
	movies, err := s.storage.MoviesForDirector(ctx, personID)
	if err != nil {
		s.log.With("op", op, "person_id", personID).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *CreditService) AddDirector(ctx context.Context, movieID, personID int64) error {
	const op = "credits.CreditService.AddDirector"
	log := s.log.With("op", op, "movie_id", movieID, "person_id", personID)
	if err := s.storage.AddDirector(ctx, movieID, personID); err != nil {
		return s.translateErr(err, log)
	}
	return nil
}

func (s *CreditService) RemoveDirector(ctx context.Context, movieID, personID int64) error {
	const op = "credits.CreditService.RemoveDirector"
	log := s.log.With("op", op, "movie_id", movieID, "person_id", personID)
	if err := s.storage.RemoveDirector(ctx, movieID, personID); err != nil {
		return s.translateErr(err, log)
	}
	return nil
}
