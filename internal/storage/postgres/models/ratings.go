package models

import (
	"context"

	"movielib/proj/internal/domain/filters"
	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
	"movielib/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

// RatingModel owns the scores and reviews tables and the derived
// movies.rating column. Every mutation runs in a single transaction and
// finishes with recomputeRating, so the stored average can never be observed
// out of sync with the score rows.
type RatingModel struct {
	db *postgres.PostgresDB
}

// recomputeRating sets the movie's average in one atomic statement. The
// subquery is evaluated by the engine under the UPDATE's row lock, which
// serializes concurrent scorers of the same movie and rules out the
// read-then-write lost-update anomaly.
func recomputeRating(ctx context.Context, tx pgx.Tx, movieID int64) error {
	_, err := tx.Exec(
		ctx,
		`UPDATE movies
		SET rating = COALESCE((SELECT AVG(score) FROM scores WHERE movie_id = $1), 0)
		WHERE id = $1`,
		movieID,
	)
	return err
}

func movieExists(ctx context.Context, tx pgx.Tx, movieID int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)", movieID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return storage.ErrReferenceNotFound
	}
	return nil
}

// UpsertScore inserts or replaces the user's score for a movie and recomputes
// the movie's average inside the same transaction.
func (m *RatingModel) UpsertScore(ctx context.Context, userID, movieID int64, score int32) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := movieExists(ctx, tx, movieID); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO scores (user_id, movie_id, score) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, movie_id) DO UPDATE SET score = EXCLUDED.score`,
			userID,
			movieID,
			score,
		)
		if err != nil {
			return err
		}
		return recomputeRating(ctx, tx, movieID)
	})
}

// DeleteScore removes the user's score and recomputes the average over the
// remaining rows (0 when none are left).
func (m *RatingModel) DeleteScore(ctx context.Context, userID, movieID int64) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := movieExists(ctx, tx, movieID); err != nil {
			return err
		}
		status, err := tx.Exec(
			ctx,
			"DELETE FROM scores WHERE user_id = $1 AND movie_id = $2",
			userID,
			movieID,
		)
		if err != nil {
			return err
		}
		if status.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return recomputeRating(ctx, tx, movieID)
	})
}

func (m *RatingModel) UpsertReview(ctx context.Context, userID, movieID int64, review string) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := movieExists(ctx, tx, movieID); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO reviews (user_id, movie_id, review) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, movie_id) DO UPDATE SET review = EXCLUDED.review`,
			userID,
			movieID,
			review,
		)
		return err
	})
}

func (m *RatingModel) DeleteReview(ctx context.Context, userID, movieID int64) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := movieExists(ctx, tx, movieID); err != nil {
			return err
		}
		status, err := tx.Exec(
			ctx,
			"DELETE FROM reviews WHERE user_id = $1 AND movie_id = $2",
			userID,
			movieID,
		)
		if err != nil {
			return err
		}
		if status.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func (m *RatingModel) ListMovieReviews(ctx context.Context, movieID int64, filters filters.Filters) ([]models.Review, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`SELECT r.user_id, r.movie_id, u.username, r.review
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = $1
		ORDER BY r.user_id DESC
		LIMIT $2 OFFSET $3`,
		movieID,
		filters.Limit,
		filters.Offset(),
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
}
