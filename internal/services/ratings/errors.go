package ratings

import (
	"errors"
	"fmt"
)

const (
	MinScore = 1
	MaxScore = 10

	MaxReviewWords = 200
)

var (
	ErrInvalidScore   = fmt.Errorf("score must be a number between %d and %d", MinScore, MaxScore)
	ErrEmptyReview    = errors.New("review cannot be empty")
	ErrReviewTooLong  = fmt.Errorf("review must be less than or equal to %d words", MaxReviewWords)
	ErrMovieNotFound  = errors.New("movie not found")
	ErrScoreNotFound  = errors.New("no score found to delete")
	ErrReviewNotFound = errors.New("no review found to delete")
)
