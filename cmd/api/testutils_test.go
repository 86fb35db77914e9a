package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"movielib/proj/internal/config"
	"movielib/proj/internal/domain/fields"
	"movielib/proj/internal/domain/filters"
	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/services"
	"movielib/proj/internal/services/auth"
	"movielib/proj/internal/services/movies"
	"movielib/proj/internal/services/ratings"
	"movielib/proj/internal/services/users"
	"movielib/proj/internal/storage"
	"movielib/proj/internal/storage/revocations"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "test-secret"
	testPassword = "password123"
)

type fakeMoviesStorage struct {
	movies map[int64]*models.Movie
	nextID int64
}

func newFakeMoviesStorage() *fakeMoviesStorage {
	return &fakeMoviesStorage{movies: make(map[int64]*models.Movie), nextID: 1}
}

func (s *fakeMoviesStorage) Get(_ context.Context, id int64) (*models.Movie, error) {
	movie, ok := s.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return movie, nil
}

func (s *fakeMoviesStorage) GetByTitle(_ context.Context, title string) (*models.Movie, error) {
	for _, movie := range s.movies {
		if movie.Title == title {
			return movie, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeMoviesStorage) List(_ context.Context, _ filters.Filters) ([]models.Movie, error) {
	list := []models.Movie{}
	for _, movie := range s.movies {
		list = append(list, *movie)
	}
	return list, nil
}

func (s *fakeMoviesStorage) Insert(_ context.Context, title string, episodes int32, synopsis *string) (*models.Movie, error) {
	movie := &models.Movie{ID: s.nextID, Title: title, Episodes: episodes, Synopsis: synopsis}
	s.nextID++
	s.movies[movie.ID] = movie
	return movie, nil
}

func (s *fakeMoviesStorage) Update(_ context.Context, id int64, title string, episodes int32, synopsis *string) (*models.Movie, error) {
	movie, ok := s.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	movie.Title = title
	movie.Episodes = episodes
	movie.Synopsis = synopsis
	return movie, nil
}

func (s *fakeMoviesStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.movies[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.movies, id)
	return nil
}

type scoreKey struct {
	userID  int64
	movieID int64
}

// fakeRatingsStorage mirrors the contract of the real storage: mutations
// against an unknown movie fail with ErrReferenceNotFound, and every score
// mutation leaves movies.rating equal to the mean of the movie's score rows.
type fakeRatingsStorage struct {
	movies  *fakeMoviesStorage
	scores  map[scoreKey]int32
	reviews map[scoreKey]string
}

func newFakeRatingsStorage(movies *fakeMoviesStorage) *fakeRatingsStorage {
	return &fakeRatingsStorage{
		movies:  movies,
		scores:  make(map[scoreKey]int32),
		reviews: make(map[scoreKey]string),
	}
}

func (s *fakeRatingsStorage) movieExists(movieID int64) error {
	if _, ok := s.movies.movies[movieID]; !ok {
		return storage.ErrReferenceNotFound
	}
	return nil
}

func (s *fakeRatingsStorage) recompute(movieID int64) {
	movie, ok := s.movies.movies[movieID]
	if !ok {
		return
	}
	var sum, count int
	for key, score := range s.scores {
		if key.movieID == movieID {
			sum += int(score)
			count++
		}
	}
	if count == 0 {
		movie.Rating = 0
		return
	}
	movie.Rating = fields.MovieRating(float64(sum) / float64(count))
}

func (s *fakeRatingsStorage) UpsertScore(_ context.Context, userID, movieID int64, score int32) error {
	if err := s.movieExists(movieID); err != nil {
		return err
	}
	s.scores[scoreKey{userID, movieID}] = score
	s.recompute(movieID)
	return nil
}

func (s *fakeRatingsStorage) DeleteScore(_ context.Context, userID, movieID int64) error {
	if err := s.movieExists(movieID); err != nil {
		return err
	}
	key := scoreKey{userID, movieID}
	if _, ok := s.scores[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.scores, key)
	s.recompute(movieID)
	return nil
}

func (s *fakeRatingsStorage) UpsertReview(_ context.Context, userID, movieID int64, review string) error {
	if err := s.movieExists(movieID); err != nil {
		return err
	}
	s.reviews[scoreKey{userID, movieID}] = review
	return nil
}

func (s *fakeRatingsStorage) DeleteReview(_ context.Context, userID, movieID int64) error {
	if err := s.movieExists(movieID); err != nil {
		return err
	}
	key := scoreKey{userID, movieID}
	if _, ok := s.reviews[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.reviews, key)
	return nil
}

func (s *fakeRatingsStorage) ListMovieReviews(_ context.Context, movieID int64, _ filters.Filters) ([]models.Review, error) {
	list := []models.Review{}
	for key, review := range s.reviews {
		if key.movieID == movieID {
			list = append(list, models.Review{UserID: key.userID, MovieID: movieID, Review: review})
		}
	}
	return list, nil
}

// removeUserScores mirrors the FK cascade of a user deletion: the user's
// scores and reviews go away and every affected movie's rating is recomputed.
func (s *fakeRatingsStorage) removeUserScores(userID int64) {
	for key := range s.scores {
		if key.userID == userID {
			delete(s.scores, key)
			s.recompute(key.movieID)
		}
	}
	for key := range s.reviews {
		if key.userID == userID {
			delete(s.reviews, key)
		}
	}
}

// fakeUsersStorage seeds one account per role, all sharing testPassword.
type fakeUsersStorage struct {
	users   map[string]*models.User
	nextID  int64
	ratings *fakeRatingsStorage
}

func newFakeUsersStorage(t *testing.T, ratings *fakeRatingsStorage) *fakeUsersStorage {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	s := &fakeUsersStorage{users: make(map[string]*models.User), nextID: 1, ratings: ratings}
	for _, role := range []models.Role{models.RoleUser, models.RoleModerator, models.RoleAdmin} {
		name := string(role) + "1"
		s.users[name+"@example.com"] = &models.User{
			ID:           s.nextID,
			Email:        name + "@example.com",
			Username:     name,
			PasswordHash: hash,
			Role:         role,
		}
		s.nextID++
	}
	return s
}

func (s *fakeUsersStorage) Insert(_ context.Context, email, username string, passwordHash []byte, role models.Role) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return nil, storage.ErrConflict
		}
	}
	user := &models.User{ID: s.nextID, Email: email, Username: username, PasswordHash: passwordHash, Role: role}
	s.nextID++
	s.users[email] = user
	return user, nil
}

func (s *fakeUsersStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (s *fakeUsersStorage) Get(_ context.Context, id int64) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUsersStorage) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeUsersStorage) List(_ context.Context, _ filters.Filters) ([]models.User, error) {
	list := []models.User{}
	for _, u := range s.users {
		list = append(list, *u)
	}
	return list, nil
}

func (s *fakeUsersStorage) UpdateCredentials(_ context.Context, id int64, username string, passwordHash []byte) error {
	for _, u := range s.users {
		if u.Username == username && u.ID != id {
			return storage.ErrConflict
		}
	}
	for _, u := range s.users {
		if u.ID == id {
			u.Username = username
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *fakeUsersStorage) deleteUser(user *models.User) {
	delete(s.users, user.Email)
	if s.ratings != nil {
		s.ratings.removeUserScores(user.ID)
	}
}

func (s *fakeUsersStorage) Delete(ctx context.Context, id int64) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	s.deleteUser(user)
	return nil
}

func (s *fakeUsersStorage) DeleteByUsername(ctx context.Context, username string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	s.deleteUser(user)
	return nil
}

func (s *fakeUsersStorage) GetRatings(_ context.Context, userID int64, _ filters.Filters) ([]models.UserRating, error) {
	list := []models.UserRating{}
	for key, score := range s.ratings.scores {
		if key.userID != userID {
			continue
		}
		rating := models.UserRating{MovieID: key.movieID, Score: score}
		if movie, ok := s.ratings.movies.movies[key.movieID]; ok {
			rating.Title = movie.Title
		}
		if review, ok := s.ratings.reviews[key]; ok {
			rating.Review = &review
		}
		list = append(list, rating)
	}
	return list, nil
}

type testStorages struct {
	users   *fakeUsersStorage
	movies  *fakeMoviesStorage
	ratings *fakeRatingsStorage
}

func NewTestApplication(t *testing.T) (*Application, *testStorages) {
	t.Helper()
	cfg := &config.Config{
		AppSecret: testSecret,
		TokenTTL:  time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	moviesStorage := newFakeMoviesStorage()
	ratingsStorage := newFakeRatingsStorage(moviesStorage)
	usersStorage := newFakeUsersStorage(t, ratingsStorage)
	svc := &services.Services{
		Auth:    auth.New(log, usersStorage, revocations.NewMemory(), nil, nil, testSecret, time.Hour),
		Users:   users.New(log, usersStorage),
		Movies:  movies.New(log, moviesStorage),
		Ratings: ratings.New(log, ratingsStorage),
	}
	app := NewApplication(cfg, log, svc)
	return app, &testStorages{users: usersStorage, movies: moviesStorage, ratings: ratingsStorage}
}

// loginAs returns a bearer token for one of the seeded accounts.
func loginAs(t *testing.T, app *Application, role models.Role) string {
	t.Helper()
	token, err := app.services.Auth.Login(context.Background(), string(role)+"1@example.com", testPassword)
	require.NoError(t, err)
	return token
}
