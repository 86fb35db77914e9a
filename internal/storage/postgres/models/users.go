package models

import (
	"context"
	"errors"

	"movielib/proj/internal/domain/filters"
	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
	"movielib/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

type UserModel struct {
	db *postgres.PostgresDB
}

const userColumns = "id, email, username, password_hash, role, created_at, updated_at"

func collectUser(rows pgx.Rows) (*models.User, error) {
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (m *UserModel) Get(ctx context.Context, id int64) (*models.User, error) {
	rows, _ := m.db.Conn.Query(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return collectUser(rows)
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, _ := m.db.Conn.Query(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return collectUser(rows)
}

func (m *UserModel) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	rows, _ := m.db.Conn.Query(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
	return collectUser(rows)
}

func (m *UserModel) List(ctx context.Context, filters filters.Filters) ([]models.User, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT $1 OFFSET $2",
		filters.Limit,
		filters.Offset(),
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
}

// Insert checks the email/username collision and inserts in one transaction.
// The unique constraints back the check up against concurrent registrations.
func (m *UserModel) Insert(ctx context.Context, email, username string, passwordHash []byte, role models.Role) (*models.User, error) {
	var user *models.User
	err := m.db.WithTx(ctx, func(tx pgx.Tx) error {
		var existingID int64
		err := tx.QueryRow(
			ctx,
			"SELECT id FROM users WHERE email = $1 OR username = $2",
			email,
			username,
		).Scan(&existingID)
		if err == nil {
			return storage.ErrConflict
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		rows, _ := tx.Query(
			ctx,
			"INSERT INTO users (email, username, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING "+userColumns,
			email,
			username,
			passwordHash,
			role,
		)
		user, err = collectUser(rows)
		if postgres.IsConflict(err) {
			return storage.ErrConflict
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateCredentials replaces the username and password hash, rejecting a
// username already held by another account, atomically.
func (m *UserModel) UpdateCredentials(ctx context.Context, id int64, username string, passwordHash []byte) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		var takenBy int64
		err := tx.QueryRow(
			ctx,
			"SELECT id FROM users WHERE username = $1 AND id != $2",
			username,
			id,
		).Scan(&takenBy)
		if err == nil {
			return storage.ErrConflict
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		status, err := tx.Exec(
			ctx,
			"UPDATE users SET username = $1, password_hash = $2, updated_at = now() WHERE id = $3",
			username,
			passwordHash,
			id,
		)
		if err != nil {
			if postgres.IsConflict(err) {
				return storage.ErrConflict
			}
			return err
		}
		if status.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

// deleteUser removes the row and recomputes the rating of every movie the
// user had scored, since the FK cascade deletes the score rows along with the
// account. column is one of two fixed identifiers, never caller input.
func deleteUser(ctx context.Context, tx pgx.Tx, column string, value any) error {
	rows, _ := tx.Query(
		ctx,
		"SELECT movie_id FROM scores WHERE user_id = (SELECT id FROM users WHERE "+column+" = $1)",
		value,
	)
	movieIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return err
	}
	status, err := tx.Exec(ctx, "DELETE FROM users WHERE "+column+" = $1", value)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	for _, movieID := range movieIDs {
		if err := recomputeRating(ctx, tx, movieID); err != nil {
			return err
		}
	}
	return nil
}

func (m *UserModel) Delete(ctx context.Context, id int64) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		return deleteUser(ctx, tx, "id", id)
	})
}

func (m *UserModel) DeleteByUsername(ctx context.Context, username string) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		return deleteUser(ctx, tx, "username", username)
	})
}

// GetRatings returns the user's scores joined with their optional reviews.
func (m *UserModel) GetRatings(ctx context.Context, userID int64, filters filters.Filters) ([]models.UserRating, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`SELECT s.movie_id, m.title, s.score, r.review
		FROM scores s
		JOIN movies m ON m.id = s.movie_id
		LEFT JOIN reviews r ON r.movie_id = s.movie_id AND r.user_id = s.user_id
		WHERE s.user_id = $1
		ORDER BY s.movie_id
		LIMIT $2 OFFSET $3`,
		userID,
		filters.Limit,
		filters.Offset(),
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.UserRating])
}
