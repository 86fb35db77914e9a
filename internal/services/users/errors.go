package users

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrInvalidPassword = errors.New("invalid password")
	ErrAdminProtected  = errors.New("admin accounts cannot be deleted")
)
