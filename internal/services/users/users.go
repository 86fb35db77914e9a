package users

import (
	"context"
	"errors"
	"log/slog"

	"movielib/proj/internal/domain/filters"
	"movielib/proj/internal/domain/models"
	"movielib/proj/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type UsersStorage interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filters filters.Filters) ([]models.User, error)
	UpdateCredentials(ctx context.Context, id int64, username string, passwordHash []byte) error
	Delete(ctx context.Context, id int64) error
	DeleteByUsername(ctx context.Context, username string) error
	GetRatings(ctx context.Context, userID int64, filters filters.Filters) ([]models.UserRating, error)
}

type UserService struct {
	log     *slog.Logger
	storage UsersStorage
}

func New(log *slog.Logger, storage UsersStorage) *UserService {
	return &UserService{
		log:     log,
		storage: storage,
	}
}

func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.User, error) {
	const op = "users.UserService.GetProfile"
	log := s.log.With("op", op, "id", id)
	user, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the username and password after verifying the
// caller's current password.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, newUsername, currentPassword, newPassword string) error {
	const op = "users.UserService.UpdateProfile"
	log := s.log.With("op", op, "id", id)
	user, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(currentPassword)); err != nil {
		log.Info("current password mismatch")
		return ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	if err := s.storage.UpdateCredentials(ctx, id, newUsername, hash); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("username taken")
			return ErrUsernameTaken
		case errors.Is(err, storage.ErrNotFound):
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *UserService) DeleteProfile(ctx context.Context, id int64) error {
	const op = "users.UserService.DeleteProfile"
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return err
	}
	return nil
}

func (s *UserService) GetRatings(ctx context.Context, id int64, filters filters.Filters) ([]models.UserRating, error) {
	const op = "users.UserService.GetRatings"
	ratings, err := s.storage.GetRatings(ctx, id, filters)
	if err != nil {
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return ratings, nil
}

func (s *UserService) List(ctx context.Context, filters filters.Filters) ([]models.User, error) {
	const op = "users.UserService.List"
	users, err := s.storage.List(ctx, filters)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return users, nil
}

// DeleteByUsername is the admin path. Admin accounts are never deletable
// this way, not even by another admin.
func (s *UserService) DeleteByUsername(ctx context.Context, username string) error {
	const op = "users.UserService.DeleteByUsername"
	log := s.log.With("op", op, "username", username)
	user, err := s.storage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	if user.Role == models.RoleAdmin {
		log.Warn("attempt to delete an admin account")
		return ErrAdminProtected
	}
	if err := s.storage.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
