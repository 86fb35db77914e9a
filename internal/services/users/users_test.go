package users

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"movielib/proj/internal/domain/filters"
	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUsersStorage struct {
	byID       map[int64]*models.User
	byUsername map[string]*models.User
	updateErr  error
	deleted    []string
}

func newStubUsersStorage(t *testing.T, seed ...*models.User) *stubUsersStorage {
	t.Helper()
	s := &stubUsersStorage{
		byID:       make(map[int64]*models.User),
		byUsername: make(map[string]*models.User),
	}
	for _, u := range seed {
		if u.PasswordHash == nil {
			hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
			require.NoError(t, err)
			u.PasswordHash = hash
		}
		s.byID[u.ID] = u
		s.byUsername[u.Username] = u
	}
	return s
}

func (s *stubUsersStorage) Get(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (s *stubUsersStorage) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := s.byUsername[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (s *stubUsersStorage) List(_ context.Context, _ filters.Filters) ([]models.User, error) {
	list := []models.User{}
	for _, u := range s.byID {
		list = append(list, *u)
	}
	return list, nil
}

func (s *stubUsersStorage) UpdateCredentials(_ context.Context, id int64, username string, passwordHash []byte) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	u, ok := s.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.byUsername, u.Username)
	u.Username = username
	u.PasswordHash = passwordHash
	s.byUsername[username] = u
	return nil
}

func (s *stubUsersStorage) Delete(_ context.Context, id int64) error {
	u, ok := s.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byUsername, u.Username)
	return nil
}

func (s *stubUsersStorage) DeleteByUsername(_ context.Context, username string) error {
	u, ok := s.byUsername[username]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.byID, u.ID)
	delete(s.byUsername, username)
	s.deleted = append(s.deleted, username)
	return nil
}

func (s *stubUsersStorage) GetRatings(_ context.Context, _ int64, _ filters.Filters) ([]models.UserRating, error) {
	return []models.UserRating{}, nil
}

func newTestService(stub *stubUsersStorage) *UserService {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), stub)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong current password", func(t *testing.T) {
		stub := newStubUsersStorage(t, &models.User{ID: 1, Username: "alice"})
		svc := newTestService(stub)
		err := svc.UpdateProfile(ctx, 1, "alice2", "wrong-password", "newpassword1")
		assert.ErrorIs(t, err, ErrInvalidPassword)
		assert.Equal(t, "alice", stub.byID[1].Username)
	})

	t.Run("username taken", func(t *testing.T) {
		stub := newStubUsersStorage(t, &models.User{ID: 1, Username: "alice"})
		stub.updateErr = storage.ErrConflict
		svc := newTestService(stub)
		err := svc.UpdateProfile(ctx, 1, "bob", "password123", "newpassword1")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("success rehashes the password", func(t *testing.T) {
		stub := newStubUsersStorage(t, &models.User{ID: 1, Username: "alice"})
		svc := newTestService(stub)
		require.NoError(t, svc.UpdateProfile(ctx, 1, "alice2", "password123", "newpassword1"))
		assert.Equal(t, "alice2", stub.byID[1].Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword(stub.byID[1].PasswordHash, []byte("newpassword1")))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestService(newStubUsersStorage(t))
		err := svc.UpdateProfile(ctx, 42, "x", "password123", "newpassword1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeleteByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("admin accounts are protected", func(t *testing.T) {
		stub := newStubUsersStorage(t, &models.User{ID: 1, Username: "root", Role: models.RoleAdmin})
		svc := newTestService(stub)
		err := svc.DeleteByUsername(ctx, "root")
		assert.ErrorIs(t, err, ErrAdminProtected)
		assert.Contains(t, stub.byUsername, "root")
	})

	t.Run("regular user is deleted", func(t *testing.T) {
		stub := newStubUsersStorage(t, &models.User{ID: 1, Username: "alice", Role: models.RoleUser})
		svc := newTestService(stub)
		require.NoError(t, svc.DeleteByUsername(ctx, "alice"))
		assert.Equal(t, []string{"alice"}, stub.deleted)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestService(newStubUsersStorage(t))
		err := svc.DeleteByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
