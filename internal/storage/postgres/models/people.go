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

type PersonModel struct {
	db *postgres.PostgresDB
}

const personColumns = "id, first_name, last_name, gender, birth_year, birth_country"

func (m *PersonModel) Get(ctx context.Context, id int64) (*models.Person, error) {
	rows, _ := m.db.Conn.Query(ctx, "SELECT "+personColumns+" FROM people WHERE id = $1", id)
	person, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Person])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (m *PersonModel) List(ctx context.Context, filters filters.Filters) ([]models.Person, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		"SELECT "+personColumns+" FROM people ORDER BY id LIMIT $1 OFFSET $2",
		filters.Limit,
		filters.Offset(),
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Person])
}

func (m *PersonModel) Insert(ctx context.Context, p *models.Person) (*models.Person, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`INSERT INTO people (first_name, last_name, gender, birth_year, birth_country)
		VALUES ($1, $2, $3, $4, $5) RETURNING `+personColumns,
		p.FirstName,
		p.LastName,
		p.Gender,
		p.BirthYear,
		p.BirthCountry,
	)
	person, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Person])
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (m *PersonModel) Update(ctx context.Context, p *models.Person) (*models.Person, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		`UPDATE people SET first_name = $1, last_name = $2, gender = $3, birth_year = $4, birth_country = $5
		WHERE id = $6 RETURNING `+personColumns,
		p.FirstName,
		p.LastName,
		p.Gender,
		p.BirthYear,
		p.BirthCountry,
		p.ID,
	)
	person, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Person])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (m *PersonModel) Delete(ctx context.Context, id int64) error {
	status, err := m.db.Conn.Exec(ctx, "DELETE FROM people WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
