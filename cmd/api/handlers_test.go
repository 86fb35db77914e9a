package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movielib/proj/internal/domain/fields"
	"movielib/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	request := httptest.NewRequest(method, path, &buf)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return resp
}

func TestHealthcheck(t *testing.T) {
	app, _ := NewTestApplication(t)
	recorder := doRequest(t, app.routes(), http.MethodGet, "/api/v1/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "available")
}

func TestMovieHandlers(t *testing.T) {
	app, storages := NewTestApplication(t)
	router := app.routes()
	modToken := loginAs(t, app, models.RoleModerator)
	userToken := loginAs(t, app, models.RoleUser)

	t.Run("list is 200 with empty array when no movies exist", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/api/v1/movie/", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeResponse(t, recorder)
		movies, ok := resp.Data["movies"].([]any)
		require.True(t, ok)
		assert.Empty(t, movies)
	})

	t.Run("create requires moderator", func(t *testing.T) {
		body := map[string]any{"title": "Alien"}
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/movie/", "", body)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		recorder = doRequest(t, router, http.MethodPost, "/api/v1/movie/", userToken, body)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("create and fetch", func(t *testing.T) {
		body := map[string]any{"title": "Alien", "episodes": 1}
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/movie/", modToken, body)
		require.Equal(t, http.StatusCreated, recorder.Code)

		recorder = doRequest(t, router, http.MethodGet, "/api/v1/movie/1", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Alien")

		recorder = doRequest(t, router, http.MethodGet, "/api/v1/movie/title/Alien", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("blank title fails validation", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/movie/", modToken, map[string]any{"title": "   "})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Contains(t, resp.Data["errors"], "title")
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/api/v1/movie/999", "", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, "/api/v1/movie/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("delete", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodDelete, "/api/v1/movie/1", modToken, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		_, exists := storages.movies.movies[1]
		assert.False(t, exists)
	})
}

func TestScoreHandlers(t *testing.T) {
	app, storages := NewTestApplication(t)
	router := app.routes()
	userToken := loginAs(t, app, models.RoleUser)
	_, err := storages.movies.Insert(context.Background(), "Alien", 1, nil)
	require.NoError(t, err)

	t.Run("requires authentication", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/score/1", "", map[string]any{"score": 8})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("submit valid score", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/score/1", userToken, map[string]any{"score": 8})
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int32(8), storages.ratings.scores[scoreKey{1, 1}])
	})

	t.Run("out of range score is 400", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/score/1", userToken, map[string]any{"score": 11})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("score for unknown movie is 404", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/score/999", userToken, map[string]any{"score": 5})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("delete score then delete again", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodDelete, "/api/v1/score/1", userToken, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		recorder = doRequest(t, router, http.MethodDelete, "/api/v1/score/1", userToken, nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "No score found to delete.")
	})
}

func countScores(storages *testStorages, movieID int64) int {
	count := 0
	for key := range storages.ratings.scores {
		if key.movieID == movieID {
			count++
		}
	}
	return count
}

func TestMovieRatingTracksScores(t *testing.T) {
	app, storages := NewTestApplication(t)
	router := app.routes()
	userToken := loginAs(t, app, models.RoleUser)
	modToken := loginAs(t, app, models.RoleModerator)
	adminToken := loginAs(t, app, models.RoleAdmin)
	movie, err := storages.movies.Insert(context.Background(), "Alien", 1, nil)
	require.NoError(t, err)

	submit := func(t *testing.T, token string, score int) {
		t.Helper()
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/score/1", token, map[string]any{"score": score})
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	t.Run("rating is the mean of all scores", func(t *testing.T) {
		submit(t, userToken, 4)
		assert.Equal(t, fields.MovieRating(4), movie.Rating)
		submit(t, modToken, 6)
		assert.Equal(t, fields.MovieRating(5), movie.Rating)
		submit(t, adminToken, 8)
		assert.Equal(t, fields.MovieRating(6), movie.Rating)
	})

	t.Run("resubmitting replaces the score instead of adding a row", func(t *testing.T) {
		submit(t, userToken, 10)
		assert.Equal(t, 3, countScores(storages, 1))
		assert.Equal(t, fields.MovieRating(8), movie.Rating)
	})

	t.Run("deleting a score excludes it from the mean", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodDelete, "/api/v1/score/1", modToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, fields.MovieRating(9), movie.Rating)
	})

	t.Run("rating resets to zero when the last score goes", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodDelete, "/api/v1/score/1", userToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		recorder = doRequest(t, router, http.MethodDelete, "/api/v1/score/1", adminToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, fields.MovieRating(0), movie.Rating)
		assert.Equal(t, 0, countScores(storages, 1))
	})
}

func TestUserDeletionRecomputesRatings(t *testing.T) {
	app, storages := NewTestApplication(t)
	router := app.routes()
	userToken := loginAs(t, app, models.RoleUser)
	modToken := loginAs(t, app, models.RoleModerator)
	adminToken := loginAs(t, app, models.RoleAdmin)
	movie, err := storages.movies.Insert(context.Background(), "Alien", 1, nil)
	require.NoError(t, err)

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/score/1", userToken, map[string]any{"score": 8})
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder = doRequest(t, router, http.MethodPost, "/api/v1/score/1", modToken, map[string]any{"score": 4})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, fields.MovieRating(6), movie.Rating)

	t.Run("admin deletion drops the user's scores from the mean", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodDelete, "/api/v1/user/profile/user1", adminToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, fields.MovieRating(4), movie.Rating)
		assert.Equal(t, 1, countScores(storages, 1))
	})

	t.Run("self deletion does too", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodDelete, "/api/v1/user/profile", modToken, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, fields.MovieRating(0), movie.Rating)
		assert.Equal(t, 0, countScores(storages, 1))
	})
}

func TestReviewHandlers(t *testing.T) {
	app, storages := NewTestApplication(t)
	router := app.routes()
	userToken := loginAs(t, app, models.RoleUser)
	_, err := storages.movies.Insert(context.Background(), "Alien", 1, nil)
	require.NoError(t, err)

	t.Run("submit and list", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/review/1", userToken, map[string]any{"review": "A classic."})
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = doRequest(t, router, http.MethodGet, "/api/v1/review/1", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "A classic.")
	})

	t.Run("blank review is 400", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/review/1", userToken, map[string]any{"review": "   "})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("review over the word limit is 400", func(t *testing.T) {
		long := strings.TrimSpace(strings.Repeat("word ", 201))
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/review/1", userToken, map[string]any{"review": long})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Contains(t, resp.Data["errors"], "review")
	})

	t.Run("listing reviews for a movie without any is 200 with empty array", func(t *testing.T) {
		_, err := storages.movies.Insert(context.Background(), "Aliens", 1, nil)
		require.NoError(t, err)
		recorder := doRequest(t, router, http.MethodGet, "/api/v1/review/2", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeResponse(t, recorder)
		reviews, ok := resp.Data["reviews"].([]any)
		require.True(t, ok)
		assert.Empty(t, reviews)
	})
}

func TestAuthHandlers(t *testing.T) {
	app, _ := NewTestApplication(t)
	router := app.routes()

	t.Run("register then login", func(t *testing.T) {
		body := map[string]any{"email": "new@example.com", "username": "newbie", "password": "password123"}
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/register", "", body)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		recorder = doRequest(t, router, http.MethodPost, "/api/v1/login", "", map[string]any{
			"email": "new@example.com", "password": "password123",
		})
		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("duplicate registration is 409", func(t *testing.T) {
		body := map[string]any{"email": "user1@example.com", "username": "someoneelse", "password": "password123"}
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/register", "", body)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("reserved username fails validation", func(t *testing.T) {
		body := map[string]any{"email": "a@example.com", "username": "Admin", "password": "password123"}
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/register", "", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Contains(t, resp.Data["errors"], "username")
	})

	t.Run("wrong password is uniform 401", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/login", "", map[string]any{
			"email": "user1@example.com", "password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		recorder2 := doRequest(t, router, http.MethodPost, "/api/v1/login", "", map[string]any{
			"email": "nobody@example.com", "password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder2.Code)
		assert.Equal(t, recorder.Body.String(), recorder2.Body.String())
	})

	t.Run("register admin is admin gated", func(t *testing.T) {
		body := map[string]any{"email": "mod2@example.com", "username": "mod2", "password": "password123", "role": "moderator"}
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/register/admin", loginAs(t, app, models.RoleUser), body)
		assert.Equal(t, http.StatusForbidden, recorder.Code)

		recorder = doRequest(t, router, http.MethodPost, "/api/v1/register/admin", loginAs(t, app, models.RoleAdmin), body)
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		token := loginAs(t, app, models.RoleUser)
		recorder := doRequest(t, router, http.MethodPost, "/api/v1/logout", token, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		recorder = doRequest(t, router, http.MethodPost, "/api/v1/logout", token, nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
