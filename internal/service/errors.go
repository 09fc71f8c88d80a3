package service

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	// Command-related errors
	ErrDeviceBusy  = errors.New("a command is already in flight")
	ErrRateLimited = errors.New("command rate limit exceeded")

	// Auth-related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
)
