package domain

import "errors"

var (
	// common errors
	ErrNotFound = errors.New("not found")

	// account-specific errors
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("unable to log in")

	// auth-specific errors
	ErrUnauthenticated = errors.New("please authenticate")

	// task-listing errors
	ErrInvalidSortField = errors.New("unknown sort field")

	// avatar-specific errors
	ErrAvatarTooLarge    = errors.New("avatar exceeds the size limit")
	ErrAvatarUnsupported = errors.New("avatar must be a .jpg, .jpeg or .png image")
)
