package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Input errors
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidIndex      = errors.New("cell index out of range")
	ErrInvalidMark       = errors.New("invalid mark")
)
