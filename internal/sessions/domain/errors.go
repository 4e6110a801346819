package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidAction   = errors.New("invalid engagement action")
	ErrInvalidSession  = errors.New("session validation failed: id, title, daily goal and end date are required")
)
