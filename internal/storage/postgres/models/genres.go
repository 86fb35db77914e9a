package models

import (
	"context"
	"errors"

	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"
	"movielib/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

type GenreModel struct {
	db *postgres.PostgresDB
}

func (m *GenreModel) List(ctx context.Context) ([]models.Genre, error) {
	rows, _ := m.db.Conn.Query(ctx, "SELECT id, name FROM genres ORDER BY name")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
}

func (m *GenreModel) Insert(ctx context.Context, name string) (*models.Genre, error) {
	rows, _ := m.db.Conn.Query(ctx, "INSERT INTO genres (name) VALUES ($1) RETURNING id, name", name)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		if postgres.IsConflict(err) {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &genre, nil
}

func (m *GenreModel) Rename(ctx context.Context, id int64, name string) (*models.Genre, error) {
	rows, _ := m.db.Conn.Query(ctx, "UPDATE genres SET name = $1 WHERE id = $2 RETURNING id, name", name, id)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		if postgres.IsConflict(err) {
			return nil, storage.ErrConflict
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &genre, nil
}

func (m *GenreModel) ForMovie(ctx context.Context, movieID int64) ([]models.Genre, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`SELECT g.id, g.name FROM genres g
		JOIN movie_genres mg ON mg.genre_id = g.id
		WHERE mg.movie_id = $1 ORDER BY g.name`,
		movieID,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
}

func (m *GenreModel) MoviesFor(ctx context.Context, name string) ([]models.Movie, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`SELECT m.id, m.title, m.episodes, m.synopsis, m.rating, m.created_at FROM movies m
		JOIN movie_genres mg ON mg.movie_id = m.id
		JOIN genres g ON g.id = mg.genre_id
		WHERE g.name = $1 ORDER BY m.id`,
		name,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
}

// AddToMovie links a genre to a movie after verifying both endpoints exist.
// All three statements share one transaction so a concurrent delete of either
// endpoint cannot leave a dangling link.
func (m *GenreModel) AddToMovie(ctx context.Context, movieID, genreID int64) error {
	return m.db.WithTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)", movieID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return storage.ErrReferenceNotFound
		}
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM genres WHERE id = $1)", genreID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return storage.ErrReferenceNotFound
		}
		_, err := tx.Exec(ctx, "INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2)", movieID, genreID)
		if postgres.IsConflict(err) {
			return storage.ErrConflict
		}
		return err
	})
}

func (m *GenreModel) RemoveFromMovie(ctx context.Context, movieID, genreID int64) error {
	status, err := m.db.Conn.Exec(
		ctx,
		"DELETE FROM movie_genres WHERE movie_id = $1 AND genre_id = $2",
		movieID,
		genreID,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
