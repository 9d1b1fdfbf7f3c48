package entity

import "errors"

// Domain errors for review sessions and study material.
var (
	ErrSessionNotFound   = errors.New("review session not found")
	ErrNoDueItems        = errors.New("no items due for review")
	ErrUnknownEntityType = errors.New("unknown review entity type")
	ErrInvalidDifficulty = errors.New("invalid review difficulty")
)
