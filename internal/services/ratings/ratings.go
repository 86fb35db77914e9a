package ratings

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"movielib/proj/internal/domain/filters"
	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
)

// RatingsStorage implementations must keep the movie's stored average equal
// to the mean of its score rows across every score mutation.
type RatingsStorage interface {
	UpsertScore(ctx context.Context, userID, movieID int64, score int32) error
	DeleteScore(ctx context.Context, userID, movieID int64) error
	UpsertReview(ctx context.Context, userID, movieID int64, review string) error
	DeleteReview(ctx context.Context, userID, movieID int64) error
	ListMovieReviews(ctx context.Context, movieID int64, filters filters.Filters) ([]models.Review, error)
}

type RatingService struct {
	log     *slog.Logger
	storage RatingsStorage
}

func New(log *slog.Logger, storage RatingsStorage) *RatingService {
	return &RatingService{
		log:     log,
		storage: storage,
	}
}

// SubmitScore inserts or replaces the user's score for a movie. Range
// validation happens before any storage access.
func (s *RatingService) SubmitScore(ctx context.Context, userID, movieID int64, score int32) error {
	const op = "ratings.RatingService.SubmitScore"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID, "score", score)
	if score < MinScore || score > MaxScore {
		return ErrInvalidScore
	}
	if err := s.storage.UpsertScore(ctx, userID, movieID, score); err != nil {
		if errors.Is(err, storage.ErrReferenceNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *RatingService) DeleteScore(ctx context.Context, userID, movieID int64) error {
	const op = "ratings.RatingService.DeleteScore"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID)
	if err := s.storage.DeleteScore(ctx, userID, movieID); err != nil {
		switch {
		case errors.Is(err, storage.ErrReferenceNotFound):
			log.Info("movie not found")
			return ErrMovieNotFound
		case errors.Is(err, storage.ErrNotFound):
			log.Info("score not found")
			return ErrScoreNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

// SubmitReview inserts or replaces the user's review. Reviews are bounded
// by word count, not characters.
func (s *RatingService) SubmitReview(ctx context.Context, userID, movieID int64, review string) error {
	const op = "ratings.RatingService.SubmitReview"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID)
	words := strings.Fields(review)
	if len(words) == 0 {
		return ErrEmptyReview
	}
	if len(words) > MaxReviewWords {
		return ErrReviewTooLong
	}
	if err := s.storage.UpsertReview(ctx, userID, movieID, review); err != nil {
		if errors.Is(err, storage.ErrReferenceNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *RatingService) DeleteReview(ctx context.Context, userID, movieID int64) error {
	const op = "ratings.RatingService.DeleteReview"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID)
	if err := s.storage.DeleteReview(ctx, userID, movieID); err != nil {
		switch {
		case errors.Is(err, storage.ErrReferenceNotFound):
			log.Info("movie not found")
			return ErrMovieNotFound
		case errors.Is(err, storage.ErrNotFound):
			log.Info("review not found")
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *RatingService) ListMovieReviews(ctx context.Context, movieID int64, filters filters.Filters) ([]models.Review, error) {
	const op = "ratings.RatingService.ListMovieReviews"
	reviews, err := s.storage.ListMovieReviews(ctx, movieID, filters)
	if err != nil {
		s.log.With("op", op, "movie_id", movieID).Error(err.Error())
		return nil, err
	}
	return reviews, nil
}
