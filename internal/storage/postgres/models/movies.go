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

type MovieModel struct {
	db *postgres.PostgresDB
}

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		"SELECT id, title, episodes, synopsis, rating, created_at FROM movies WHERE id = $1",
		id,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) GetByTitle(ctx context.Context, title string) (*models.Movie, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		"SELECT id, title, episodes, synopsis, rating, created_at FROM movies WHERE title = $1 ORDER BY id LIMIT 1",
		title,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) List(ctx context.Context, filters filters.Filters) ([]models.Movie, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		"SELECT id, title, episodes, synopsis, rating, created_at FROM movies ORDER BY id LIMIT $1 OFFSET $2",
		filters.Limit,
		filters.Offset(),
	)
	movies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (m *MovieModel) Insert(ctx context.Context, title string, episodes int32, synopsis *string) (*models.Movie, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		"INSERT INTO movies (title, episodes, synopsis) VALUES ($1, $2, $3) RETURNING id, title, episodes, synopsis, rating, created_at",
		title,
		episodes,
		synopsis,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if postgres.IsConflict(err) {
			return nil, storage.ErrConflict
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) Update(ctx context.Context, id int64, title string, episodes int32, synopsis *string) (*models.Movie, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`UPDATE movies SET title = $1, episodes = $2, synopsis = $3
		WHERE id = $4 RETURNING id, title, episodes, synopsis, rating, created_at`,
		title,
		episodes,
		synopsis,
		id,
	)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) Delete(ctx context.Context, id int64) error {
	status, err := m.db.Conn.Exec(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
