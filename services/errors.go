package services

import "errors"

// Errors shared by the services and the HTTP error mapping.
var (
	// The repository could not be reached or failed mid-operation.
	ErrStorageUnavailable = errors.New("tournament storage is unavailable")

	ErrValidationFailed   = errors.New("validation failed")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrPlayerNameTooLong  = errors.New("player name is too long")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrSelfMatch          = errors.New("a player cannot play against themselves")

	ErrInvalidCredentials = errors.New("invalid organizer password")
	ErrAuthDisabled       = errors.New("organizer login is not configured")
)
