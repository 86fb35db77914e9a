package models

import "movielib/proj/internal/storage/postgres"

type Models struct {
	Movies  *MovieModel
	Users   *UserModel
	People  *PersonModel
	Genres  *GenreModel
	Credits *CreditModel
	Ratings *RatingModel
}

func New(db *postgres.PostgresDB) *Models {
	return &Models{
		Movies:  &MovieModel{db: db},
		Users:   &UserModel{db: db},
		People:  &PersonModel{db: db},
		Genres:  &GenreModel{db: db},
		Credits: &CreditModel{db: db},
		Ratings: &RatingModel{db: db},
	}
}
