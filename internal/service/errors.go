package service

import "errors"

var (
	// ErrUserNotFound is returned when a username or email resolves to
	// no user.
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfFollow is returned when a user tries to follow or
	// unfollow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrUsernameTaken is returned on a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned on a duplicate email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrJobAlreadyRunning is returned when the user already has an
	// in-progress job of the requested name.
	ErrJobAlreadyRunning = errors.New("a job of this kind is already in progress")
)
