package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("please try to login with correct credentials")
	ErrNotOwner           = errors.New("not allowed")
)
