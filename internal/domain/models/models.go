package models

import (
	"movielib/proj/internal/domain/fields"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// AnonymousUser is attached to requests carrying no credentials.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

type Movie struct {
	ID        int64              `json:"id"`       // Unique integer ID for the movie
	Title     string             `json:"title"`    // Movie title
	Episodes  int32              `json:"episodes"` // Number of episodes, 1 for a feature film
	Synopsis  *string            `json:"synopsis,omitempty"`
	Rating    fields.MovieRating `json:"rating"` // Derived average of the movie's scores, never set by clients
	CreatedAt time.Time          `json:"-"`
}

type Person struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Gender       string `json:"gender"`
	BirthYear    int32  `json:"birth_year"`
	BirthCountry string `json:"birth_country"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is a (movie, person) association carrying the credited character name.
type CastMember struct {
	MovieID   int64  `json:"movie_id"`
	PersonID  int64  `json:"person_id"`
	CastName  string `json:"cast_name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type Director struct {
	MovieID   int64  `json:"movie_id"`
	PersonID  int64  `json:"person_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// MovieCredit is a movie as seen from a person's filmography.
type MovieCredit struct {
	MovieID  int64   `json:"movie_id"`
	Title    string  `json:"title"`
	CastName *string `json:"cast_name,omitempty"`
}

type Review struct {
	UserID   int64  `json:"user_id"`
	MovieID  int64  `json:"movie_id"`
	Username string `json:"username,omitempty"`
	Review   string `json:"review"`
}

// UserRating joins a user's score and review for one movie.
type UserRating struct {
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Score   int32   `json:"score"`
	Review  *string `json:"review,omitempty"`
}
