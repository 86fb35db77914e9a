package models

import (
	"context"

	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
	"movielib/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

// CreditModel manages the two (movie, person) association tables: cast
// membership with a character name, and directorship with no attributes.
type CreditModel struct {
	db *postgres.PostgresDB
}

func verifyMovieAndPerson(ctx context.Context, tx pgx.Tx, movieID, personID int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)", movieID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return storage.ErrReferenceNotFound
	}
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM people WHERE id = $1)", personID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return storage.ErrReferenceNotFound
	}
	return nil
}

// removeLink deletes one (movie, person) row from table, which is always one
// of the two fixed association tables, never caller input.
func (m *CreditModel) removeLink(ctx context.Context, table string, movieID, personID int64) error {
	status, err := m.db.Conn.Exec(
		ctx,
		"DELETE FROM "+table+" WHERE movie_id = $1 AND person_id = $2",
		movieID,
		personID,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *CreditModel) CastForMovie(ctx context.Context, movieID int64) ([]models.CastMember, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`SELECT c.movie_id, c.person_id, c.cast_name, p.first_name, p.last_name
		FROM cast_members c
		JOIN people p ON p.id = c.person_id
		WHERE c.movie_id = $1 ORDER BY c.person_id`,
		movieID,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.CastMember])
}

func (m *CreditModel) MoviesForActor(ctx context.Context, personID int64) ([]models.MovieCredit, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`SELECT m.id AS movie_id, m.title, c.cast_name
		FROM movies m
		JOIN cast_members c ON c.movie_id = m.id
		WHERE c.person_id = $1 ORDER BY m.id`,
		personID,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.MovieCredit])
}

func (m *CreditModel) AddCastMember(ctx context.Context, movieID, personID int64, castName string) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := verifyMovieAndPerson(ctx, tx, movieID, personID); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx,
			"INSERT INTO cast_members (movie_id, person_id, cast_name) VALUES ($1, $2, $3)",
			movieID,
			personID,
			castName,
		)
		if postgres.IsConflict(err) {
			return storage.ErrConflict
		}
		return err
	})
}

func (m *CreditModel) UpdateCastName(ctx context.Context, movieID, personID int64, castName string) error {
	status, err := m.db.Conn.Exec(
		ctx,
		"UPDATE cast_members SET cast_name = $1 WHERE movie_id = $2 AND person_id = $3",
		castName,
		movieID,
		personID,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *CreditModel) RemoveCastMember(ctx context.Context, movieID, personID int64) error {
	return m.removeLink(ctx, "cast_members", movieID, personID)
}

func (m *CreditModel) DirectorsForMovie(ctx context.Context, movieID int64) ([]models.Director, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`SELECT d.movie_id, d.person_id, p.first_name, p.last_name
		FROM directors d
		JOIN people p ON p.id = d.person_id
		WHERE d.movie_id = $1 ORDER BY d.person_id`,
		movieID,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Director])
}

func (m *CreditModel) MoviesForDirector(ctx context.Context, personID int64) ([]models.MovieCredit, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`SELECT m.id AS movie_id, m.title, NULL::text AS cast_name
		FROM movies m
		JOIN directors d ON d.movie_id = m.id
		WHERE d.person_id = $1 ORDER BY m.id`,
		personID,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.MovieCredit])
}

func (m *CreditModel) AddDirector(ctx context.Context, movieID, personID int64) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := verifyMovieAndPerson(ctx, tx, movieID, personID); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx,
			"INSERT INTO directors (movie_id, person_id) VALUES ($1, $2)",
			movieID,
			personID,
		)
		if postgres.IsConflict(err) {
			return storage.ErrConflict
		}
		return err
	})
}

func (m *CreditModel) RemoveDirector(ctx context.Context, movieID, personID int64) error {
	return m.removeLink(ctx, "directors", movieID, personID)
}
