package model

import "errors"

var (
	// Authentication and token errors
	ErrAuthentication   = errors.New("incorrect username or password")
	ErrTokenInvalid     = errors.New("token invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrSubjectNotFound  = errors.New("token subject not found")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrStaleCredential  = errors.New("fresh credential required")
	ErrForbidden        = errors.New("forbidden")
	ErrPasswordMismatch = errors.New("passwords don't match")

	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrSelfDelete        = errors.New("cannot delete yourself")
	ErrUserHasContent    = errors.New("user still owns content")

	// Settings related errors
	ErrSettingsNotFound = errors.New("settings not found")

	// Content related errors
	ErrContentNotFound = errors.New("content not found")
	ErrSlugConflict    = errors.New("slug already in use")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownField = errors.New("unknown field")
)
